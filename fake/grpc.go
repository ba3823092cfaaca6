package fake

import (
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/twitter/modelcheck/common/stats"
	"github.com/twitter/modelcheck/modelapi"
	"github.com/twitter/modelcheck/modelapi/modelpb"
)

// Fields UpdateModel may change through update_mask.
var mutableFields = map[string]bool{
	"description": true,
}

type modelService struct {
	store   *Store
	updates stats.Counter
	deletes stats.Counter
}

// NewModelService returns a ModelServiceServer backed by store.
func NewModelService(store *Store, stat stats.StatsReceiver) modelpb.ModelServiceServer {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &modelService{
		store:   store,
		updates: stat.Counter(stats.FakeUpdateRequestCounter),
		deletes: stat.Counter(stats.FakeDeleteRequestCounter),
	}
}

func ownerFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return DefaultOwner
	}
	values := md[strings.ToLower(modelapi.OwnerIDHeader)]
	if len(values) != 1 {
		return DefaultOwner
	}
	return ownerOf(values[0])
}

func (s *modelService) UpdateModel(ctx context.Context, req *modelpb.UpdateModelRequest) (*modelpb.UpdateModelResponse, error) {
	s.updates.Inc(1)
	if req.GetModel() == nil {
		return nil, status.Error(codes.InvalidArgument, "model is required")
	}
	id, err := modelapi.GetID(req.GetModel().GetName())
	if err != nil {
		return nil, err
	}
	paths := req.GetUpdateMask().GetPaths()
	if len(paths) == 0 {
		return nil, status.Error(codes.InvalidArgument, "update_mask is required")
	}
	for _, p := range paths {
		if !mutableFields[p] {
			return nil, status.Errorf(codes.InvalidArgument, "field %q cannot be updated", p)
		}
	}

	m, err := s.store.Update(ownerFromContext(ctx), id, func(m *modelpb.Model) error {
		for _, p := range paths {
			switch p {
			case "description":
				m.Description = req.GetModel().GetDescription()
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.WithField("model", m.Name).Debugf("fake updated %v", paths)
	return &modelpb.UpdateModelResponse{Model: m}, nil
}

func (s *modelService) DeleteModel(ctx context.Context, req *modelpb.DeleteModelRequest) (*modelpb.DeleteModelResponse, error) {
	s.deletes.Inc(1)
	id, err := modelapi.GetID(req.GetName())
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ownerFromContext(ctx), id); err != nil {
		return nil, err
	}
	log.WithField("model", req.GetName()).Debug("fake deleted model")
	return &modelpb.DeleteModelResponse{}, nil
}
