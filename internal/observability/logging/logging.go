package logging

// Environment is the deployment stage stamped on every log record.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// ServiceInfo identifies the running binary in logs and telemetry.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

// Module names the component a log record came from.
type Module string
