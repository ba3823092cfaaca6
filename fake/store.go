// Package fake is an in-memory model service speaking the same REST multipart
// and gRPC surface as the real model backend, enough to exercise scenarios
// without one.
package fake

import (
	"sync"

	"github.com/golang/protobuf/proto"
	"github.com/golang/protobuf/ptypes"
	_struct "github.com/golang/protobuf/ptypes/struct"
	uuid "github.com/nu7hatch/gouuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/twitter/modelcheck/common/stats"
	"github.com/twitter/modelcheck/modelapi"
	"github.com/twitter/modelcheck/modelapi/modelpb"
)

const DefaultOwner = modelapi.UserCollection + "local-user"

// NewModel is what a create request carries.
type NewModel struct {
	ID              string
	Description     string
	ModelDefinition string
	Visibility      modelpb.Model_Visibility
	FileName        string
}

// Store holds models keyed by owner and id. Models handed out are copies.
type Store struct {
	mu     sync.Mutex
	models map[string]*modelpb.Model
	count  stats.Gauge
}

func NewStore(stat stats.StatsReceiver) *Store {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Store{
		models: make(map[string]*modelpb.Model),
		count:  stat.Gauge(stats.FakeModelCountGauge),
	}
}

func key(owner, id string) string {
	return owner + "/" + id
}

func clone(m *modelpb.Model) *modelpb.Model {
	return proto.Clone(m).(*modelpb.Model)
}

// Create adds a model owned by owner, AlreadyExists if the id is taken.
func (s *Store) Create(owner string, n NewModel) (*modelpb.Model, error) {
	uid, err := uuid.NewV4()
	if err != nil {
		return nil, status.Errorf(codes.Internal, "generating uid: %v", err)
	}
	now := ptypes.TimestampNow()
	if n.Visibility == modelpb.Model_VISIBILITY_UNSPECIFIED {
		n.Visibility = modelpb.Model_VISIBILITY_PRIVATE
	}
	m := &modelpb.Model{
		Name:            modelapi.ModelName(n.ID),
		Uid:             uid.String(),
		Id:              n.ID,
		Description:     n.Description,
		ModelDefinition: n.ModelDefinition,
		Configuration: &_struct.Struct{Fields: map[string]*_struct.Value{
			"content": {Kind: &_struct.Value_StringValue{StringValue: n.FileName}},
			"tag":     {Kind: &_struct.Value_StringValue{StringValue: "latest"}},
		}},
		Visibility: n.Visibility,
		User:       owner,
		CreateTime: now,
		UpdateTime: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(owner, n.ID)
	if _, ok := s.models[k]; ok {
		return nil, status.Errorf(codes.AlreadyExists, "model %s already exists", m.Name)
	}
	s.models[k] = m
	s.count.Update(int64(len(s.models)))
	return clone(m), nil
}

func (s *Store) Get(owner, id string) (*modelpb.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.models[key(owner, id)]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "model %s not found", modelapi.ModelName(id))
	}
	return clone(m), nil
}

// Update applies fn to the stored model under the store lock and bumps
// update_time when fn succeeds.
func (s *Store) Update(owner, id string, fn func(*modelpb.Model) error) (*modelpb.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.models[key(owner, id)]
	if !ok {
		return nil, status.Errorf(codes.NotFound, "model %s not found", modelapi.ModelName(id))
	}
	updated := clone(m)
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.UpdateTime = ptypes.TimestampNow()
	s.models[key(owner, id)] = updated
	return clone(updated), nil
}

func (s *Store) Delete(owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(owner, id)
	if _, ok := s.models[k]; !ok {
		return status.Errorf(codes.NotFound, "model %s not found", modelapi.ModelName(id))
	}
	delete(s.models, k)
	s.count.Update(int64(len(s.models)))
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.models)
}
