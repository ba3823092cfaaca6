package modelapi_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"golang.org/x/net/context"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/twitter/modelcheck/common/dialer"
	"github.com/twitter/modelcheck/modelapi"
	"github.com/twitter/modelcheck/modelapi/mock_modelapi"
	"github.com/twitter/modelcheck/modelapi/modelpb"
	"github.com/twitter/modelcheck/modelapi/modelpb/mock_modelpb"
)

type updateMatcher struct {
	name, description string
}

func (m updateMatcher) Matches(x interface{}) bool {
	req, ok := x.(*modelpb.UpdateModelRequest)
	if !ok {
		return false
	}
	paths := req.GetUpdateMask().GetPaths()
	return req.GetModel().GetName() == m.name && req.GetModel().GetDescription() == m.description &&
		len(paths) == 1 && paths[0] == "description"
}

func (m updateMatcher) String() string {
	return "update of " + m.name + " description=" + m.description
}

func TestUpdateModel(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock_modelpb.NewMockModelServiceClient(mockCtrl)
	want := &modelpb.Model{Name: "models/abc1234567", Id: "abc1234567", Description: "new_description"}
	svc.EXPECT().UpdateModel(gomock.Any(), updateMatcher{"models/abc1234567", "new_description"}).
		Return(&modelpb.UpdateModelResponse{Model: want}, nil)

	client := modelapi.NewGrpcClient(nil, svc, time.Second)
	res := client.UpdateModel(context.Background(),
		&modelpb.Model{Name: "models/abc1234567", Description: "new_description"}, "description")
	if !res.OK() || res.Err != nil {
		t.Fatalf("unexpected result %+v", res.GrpcResponse)
	}
	if res.Model() != want {
		t.Fatalf("got %v, want %v", res.Model(), want)
	}
}

func TestUpdateModelErrorStatus(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	svc := mock_modelpb.NewMockModelServiceClient(mockCtrl)
	svc.EXPECT().UpdateModel(gomock.Any(), gomock.Any()).
		Return(nil, status.Error(codes.NotFound, "model not found"))
	svc.EXPECT().DeleteModel(gomock.Any(), &modelpb.DeleteModelRequest{Name: "models/gone"}).
		Return(nil, errors.New("not a status"))

	client := modelapi.NewGrpcClient(nil, svc, 0)
	res := client.UpdateModel(context.Background(), &modelpb.Model{Name: "models/gone"}, "description")
	if res.Code != codes.NotFound || res.Message != "model not found" || res.Model() != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	del := client.DeleteModel(context.Background(), "models/gone")
	if del.OK() || del.Code != codes.Unknown {
		t.Fatalf("unexpected delete result %+v", del)
	}
}

func TestConnectorDial(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	conn := mock_modelapi.NewMockClientConnPtr(mockCtrl)
	svc := mock_modelpb.NewMockModelServiceClient(mockCtrl)
	grpcDialer := mock_modelapi.NewMockGRPCDialer(mockCtrl)
	grpcDialer.EXPECT().DialContext(gomock.Any(), "localhost:8083", gomock.Any(), gomock.Any()).Return(conn, nil)
	svc.EXPECT().DeleteModel(gomock.Any(), gomock.Any()).Return(&modelpb.DeleteModelResponse{}, nil)
	conn.EXPECT().Close().Return(nil)

	connector := modelapi.MakeConnector(dialer.NewConstantResolver("localhost:8083"), time.Second, time.Second).
		SetGrpcDialer(grpcDialer).
		SetModelServicepbMaker(func(cc modelapi.ClientConnPtr) modelpb.ModelServiceClient {
			if cc != conn {
				t.Errorf("maker got unexpected conn")
			}
			return svc
		})
	client, err := connector.Dial(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res := client.DeleteModel(context.Background(), "models/abc1234567"); !res.OK() {
		t.Fatalf("unexpected delete result %+v", res)
	}
	if err := client.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestConnectorDialFailure(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	grpcDialer := mock_modelapi.NewMockGRPCDialer(mockCtrl)
	grpcDialer.EXPECT().DialContext(gomock.Any(), "localhost:1", gomock.Any(), gomock.Any()).
		Return(nil, context.DeadlineExceeded)

	connector := modelapi.MakeConnector(dialer.NewConstantResolver("localhost:1"), time.Millisecond, time.Second).
		SetGrpcDialer(grpcDialer)
	if _, err := connector.Dial(context.Background()); errors.Cause(err) != context.DeadlineExceeded {
		t.Fatalf("expected deadline error, got %v", err)
	}

	unresolved := modelapi.MakeConnector(dialer.NewCompositeResolver(), time.Second, time.Second)
	if _, err := unresolved.Dial(context.Background()); err == nil {
		t.Fatal("expected resolve error")
	}
}
