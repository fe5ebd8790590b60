package label

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-deadline/internal/domain"
)

func TestService_Labels(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockLabelRepository(ctrl)

	stored := []domain.Label{{Name: "work", Color: "#1e90ff"}}
	repo.EXPECT().GetLabels(gomock.Any(), "user-1").Return(stored, nil)

	got, err := NewService(repo).Labels(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Labels() error = %v", err)
	}
	if len(got) != 1 || got[0] != stored[0] {
		t.Errorf("Labels() = %+v, want %+v", got, stored)
	}
}

func TestService_ReplaceLabels(t *testing.T) {
	tests := []struct {
		name    string
		labels  []domain.Label
		wantErr bool
	}{
		{
			name:   "valid palette",
			labels: []domain.Label{{Name: "work", Color: "#1e90ff"}, {Name: "home", Color: "#f0a"}},
		},
		{
			name:   "empty palette",
			labels: nil,
		},
		{
			name:    "invalid color",
			labels:  []domain.Label{{Name: "work", Color: "#1e90ff"}, {Name: "bad", Color: "#12345"}},
			wantErr: true,
		},
		{
			name:    "missing color",
			labels:  []domain.Label{{Name: "work"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := domain.NewMockLabelRepository(ctrl)
			if !tt.wantErr {
				repo.EXPECT().SaveLabels(gomock.Any(), "user-1", gomock.Len(len(tt.labels))).Return(nil)
			}

			got, err := NewService(repo).ReplaceLabels(context.Background(), "user-1", tt.labels)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("ReplaceLabels() error = %v, want %v", err, domain.ErrValidation)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReplaceLabels() error = %v", err)
			}
			if got == nil || len(got) != len(tt.labels) {
				t.Errorf("ReplaceLabels() = %+v, want %d labels", got, len(tt.labels))
			}
		})
	}
}

func TestService_AddLabel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockLabelRepository(ctrl)

	existing := []domain.Label{{Name: "work", Color: "#1e90ff"}}
	added := domain.Label{Name: "home", Color: "#22c55e"}
	want := []domain.Label{existing[0], added}

	gomock.InOrder(
		repo.EXPECT().GetLabels(gomock.Any(), "user-1").Return(existing, nil),
		repo.EXPECT().SaveLabels(gomock.Any(), "user-1", want).Return(nil),
	)

	got, err := NewService(repo).AddLabel(context.Background(), "user-1", added)
	if err != nil {
		t.Fatalf("AddLabel() error = %v", err)
	}
	if len(got) != 2 || got[1] != added {
		t.Errorf("AddLabel() = %+v, want %+v", got, want)
	}
}

func TestService_AddLabelRejectsInvalidColor(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockLabelRepository(ctrl)

	_, err := NewService(repo).AddLabel(context.Background(), "user-1", domain.Label{Name: "bad", Color: "red"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("AddLabel() error = %v, want %v", err, domain.ErrValidation)
	}
}

func TestService_AddLabelPropagatesStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := domain.NewMockLabelRepository(ctrl)

	storeErr := errors.New("redis down")
	repo.EXPECT().GetLabels(gomock.Any(), "user-1").Return(nil, storeErr)

	_, err := NewService(repo).AddLabel(context.Background(), "user-1", domain.Label{Name: "home", Color: "#22c55e"})
	if !errors.Is(err, storeErr) {
		t.Errorf("AddLabel() error = %v, want %v", err, storeErr)
	}
}
