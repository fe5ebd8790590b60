//go:build gcloud

package taskqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type CloudTasksClient struct {
	client     *cloudtasks.Client
	queuePath  string
	targetURL  string
	maxRetries int
}

type CloudTasksConfig struct {
	ProjectID  string
	LocationID string
	QueueID    string
	TargetURL  string
	// Endpoint points the client at an emulator. Authentication is skipped
	// when it is set.
	Endpoint   string
	MaxRetries int
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts,
			option.WithEndpoint(cfg.Endpoint),
			option.WithoutAuthentication(),
		)
	}

	client, err := cloudtasks.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &CloudTasksClient{
		client:     client,
		queuePath:  fmt.Sprintf("projects/%s/locations/%s/queues/%s", cfg.ProjectID, cfg.LocationID, cfg.QueueID),
		targetURL:  cfg.TargetURL,
		maxRetries: maxRetries,
	}, nil
}

func (c *CloudTasksClient) taskPath(taskName string) string {
	return c.queuePath + "/tasks/" + taskName
}

func (c *CloudTasksClient) RegisterNotification(ctx context.Context, task *NotificationTask) (*TaskResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification task: %w", err)
	}

	cloudTask := &taskspb.Task{
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        c.targetURL,
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: payload,
			},
		},
	}
	if task.Name != "" {
		cloudTask.Name = c.taskPath(task.Name)
	}
	if !task.ScheduleAt.IsZero() {
		cloudTask.ScheduleTime = timestamppb.New(task.ScheduleAt)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: c.queuePath,
		Task:   cloudTask,
	}

	var resp *TaskResponse
	err = retry(ctx, c.maxRetries, "task registration", taskAttrs(task), func() error {
		var err error
		resp, err = c.createTask(ctx, req, task)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *CloudTasksClient) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, task *NotificationTask) (*TaskResponse, error) {
	slog.DebugContext(ctx, "registering notification to Cloud Tasks",
		slog.String("queue_path", req.Parent),
		slog.String("event_id", task.EventID),
		slog.String("user_id", task.UserID),
	)

	createdTask, err := c.client.CreateTask(ctx, req)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			slog.InfoContext(ctx, "notification task already registered",
				slog.String("task_name", req.Task.GetName()),
				slog.String("event_id", task.EventID),
			)
			return &TaskResponse{Name: req.Task.GetName()}, nil
		}
		slog.WarnContext(ctx, "failed to create cloud task",
			slog.String("event_id", task.EventID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.InfoContext(ctx, "notification task registered to Cloud Tasks",
		slog.String("task_name", createdTask.GetName()),
		slog.String("event_id", task.EventID),
		slog.String("user_id", task.UserID),
	)

	var scheduleTime, createTime time.Time
	if createdTask.GetScheduleTime() != nil {
		scheduleTime = createdTask.GetScheduleTime().AsTime()
	}
	if createdTask.GetCreateTime() != nil {
		createTime = createdTask.GetCreateTime().AsTime()
	}

	return &TaskResponse{
		Name:         createdTask.GetName(),
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, nil
}

func (c *CloudTasksClient) DeleteTask(ctx context.Context, taskName string) error {
	taskPath := c.taskPath(taskName)
	attrs := []slog.Attr{slog.String("task_name", taskName)}

	return retry(ctx, c.maxRetries, "task deletion", attrs, func() error {
		err := c.client.DeleteTask(ctx, &taskspb.DeleteTaskRequest{Name: taskPath})
		if err != nil {
			if status.Code(err) == codes.NotFound {
				slog.InfoContext(ctx, "task not found in Cloud Tasks (may have been processed)",
					slog.String("task_name", taskName),
				)
				return nil
			}
			slog.WarnContext(ctx, "failed to delete cloud task",
				slog.String("task_name", taskName),
				slog.String("error", err.Error()),
			)
			return fmt.Errorf("failed to delete cloud task: %w", err)
		}

		slog.InfoContext(ctx, "task deleted from Cloud Tasks", slog.String("task_name", taskName))
		return nil
	})
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}
