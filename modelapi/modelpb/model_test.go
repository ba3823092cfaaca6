package modelpb

import (
	"strings"
	"testing"

	"github.com/golang/protobuf/jsonpb"
	"github.com/golang/protobuf/proto"
	"github.com/golang/protobuf/ptypes"
	_struct "github.com/golang/protobuf/ptypes/struct"
	field_mask "google.golang.org/genproto/protobuf/field_mask"
)

const snakeBody = `{
  "model": {
    "name": "models/abc1234567",
    "uid": "6f0e7c38-5d71-4a24-9d67-a5e2b7d8e1aa",
    "id": "abc1234567",
    "description": "xyz",
    "model_definition": "model-definitions/local",
    "configuration": {"content": "dummy-cls-model.zip", "tag": "latest"},
    "visibility": "VISIBILITY_PRIVATE",
    "user": "users/local-user",
    "create_time": "2022-05-01T10:00:00Z",
    "update_time": "2022-05-01T10:00:00Z",
    "state": "STATE_ONLINE"
  }
}`

func TestDecodeRestBody(t *testing.T) {
	msg := &CreateModelMultipartResponse{}
	u := jsonpb.Unmarshaler{AllowUnknownFields: true}
	if err := u.Unmarshal(strings.NewReader(snakeBody), msg); err != nil {
		t.Fatal(err)
	}
	m := msg.GetModel()
	if m.GetId() != "abc1234567" || m.GetModelDefinition() != "model-definitions/local" {
		t.Fatalf("unexpected model %v", m)
	}
	if m.GetVisibility() != Model_VISIBILITY_PRIVATE || m.GetUser() != "users/local-user" {
		t.Fatalf("unexpected visibility/user %v", m)
	}
	if len(m.GetConfiguration().GetFields()) != 2 {
		t.Fatalf("unexpected configuration %v", m.GetConfiguration())
	}
	if m.GetCreateTime() == nil || m.GetUpdateTime() == nil {
		t.Fatal("timestamps missing")
	}
}

func TestDecodeCamelCase(t *testing.T) {
	body := `{"model":{"modelDefinition":"model-definitions/local","createTime":"2022-05-01T10:00:00Z"}}`
	msg := &UpdateModelResponse{}
	if err := jsonpb.UnmarshalString(body, msg); err != nil {
		t.Fatal(err)
	}
	if msg.GetModel().GetModelDefinition() != "model-definitions/local" || msg.GetModel().GetCreateTime() == nil {
		t.Fatalf("camelCase not decoded: %v", msg)
	}
}

func TestEncodeOrigName(t *testing.T) {
	m := &Model{Id: "abc1234567", ModelDefinition: "model-definitions/local", Visibility: Model_VISIBILITY_PRIVATE}
	out, err := (&jsonpb.Marshaler{OrigName: true}).MarshalToString(m)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"model_definition":"model-definitions/local"`) || !strings.Contains(out, `"visibility":"VISIBILITY_PRIVATE"`) {
		t.Fatalf("unexpected json %s", out)
	}
}

func TestWireRoundTrip(t *testing.T) {
	now := ptypes.TimestampNow()
	req := &UpdateModelRequest{
		Model: &Model{
			Name:          "models/abc1234567",
			Description:   "new_description",
			Configuration: &_struct.Struct{Fields: map[string]*_struct.Value{"tag": {Kind: &_struct.Value_StringValue{StringValue: "latest"}}}},
			UpdateTime:    now,
		},
		UpdateMask: &field_mask.FieldMask{Paths: []string{"description"}},
	}
	data, err := proto.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	got := &UpdateModelRequest{}
	if err := proto.Unmarshal(data, got); err != nil {
		t.Fatal(err)
	}
	if !proto.Equal(req, got) {
		t.Fatalf("got %v, want %v", got, req)
	}
}

func TestVisibilityString(t *testing.T) {
	if Model_VISIBILITY_PUBLIC.String() != "VISIBILITY_PUBLIC" || Model_Visibility(7).String() != "7" {
		t.Fatal("unexpected enum names")
	}
}
