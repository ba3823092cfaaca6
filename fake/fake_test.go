package fake

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/protobuf/jsonpb"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/net/context"
	field_mask "google.golang.org/genproto/protobuf/field_mask"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/twitter/modelcheck/common/dialer"
	"github.com/twitter/modelcheck/common/stats"
	"github.com/twitter/modelcheck/modelapi"
	"github.com/twitter/modelcheck/modelapi/modelpb"
)

func postForm(t *testing.T, url string, fields map[string]string, file []byte, header http.Header) (*http.Response, []byte) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		w.WriteField(k, v)
	}
	if file != nil {
		part, _ := w.CreateFormFile("content", "dummy-cls-model.zip")
		part.Write(file)
	}
	w.Close()
	req, _ := http.NewRequest("POST", url+modelapi.CreateModelMultipartPath, body)
	for k, vs := range header {
		req.Header[k] = vs
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	out := &bytes.Buffer{}
	out.ReadFrom(resp.Body)
	return resp, out.Bytes()
}

func validFields(id string) map[string]string {
	return map[string]string{
		"name":                  "models/" + id,
		"description":           "some description",
		"model_definition_name": "model-definitions/local",
	}
}

func TestRESTCreate(t *testing.T) {
	store := NewStore(nil)
	server := httptest.NewServer(NewRESTHandler(store, nil))
	defer server.Close()

	resp, body := postForm(t, server.URL, validFields("abc1234567"), []byte("zip"), nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", resp.StatusCode, body)
	}
	msg := &modelpb.CreateModelMultipartResponse{}
	if err := jsonpb.Unmarshal(bytes.NewReader(body), msg); err != nil {
		t.Fatal(err)
	}
	if msg.Model.Id != "abc1234567" || msg.Model.User != DefaultOwner || msg.Model.CreateTime == nil {
		t.Fatalf("unexpected model %v", msg.Model)
	}
	if !bytes.Contains(body, []byte(`"model_definition":"model-definitions/local"`)) {
		t.Fatalf("expected snake_case body, got %s", body)
	}

	resp, body = postForm(t, server.URL, validFields("abc1234567"), []byte("zip"), nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	problem := Problem{}
	if err := json.Unmarshal(body, &problem); err != nil || problem.Status != http.StatusConflict {
		t.Fatalf("unexpected problem %s", body)
	}
}

func TestRESTCreateOwnerHeader(t *testing.T) {
	store := NewStore(nil)
	server := httptest.NewServer(NewRESTHandler(store, nil))
	defer server.Close()

	header := http.Header{}
	header.Set(modelapi.OwnerIDHeader, "alice")
	resp, _ := postForm(t, server.URL, validFields("m1"), []byte("zip"), header)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if _, err := store.Get("users/alice", "m1"); err != nil {
		t.Fatalf("model should belong to users/alice: %v", err)
	}
}

func TestRESTCreateRejects(t *testing.T) {
	server := httptest.NewServer(NewRESTHandler(NewStore(nil), nil))
	defer server.Close()

	cases := map[string]struct {
		fields map[string]string
		file   []byte
	}{
		"bad name":       {map[string]string{"name": "abc", "model_definition_name": "model-definitions/local"}, []byte("zip")},
		"bad id":         {map[string]string{"name": "models/_abc", "model_definition_name": "model-definitions/local"}, []byte("zip")},
		"no definition":  {map[string]string{"name": "models/abc"}, []byte("zip")},
		"bad definition": {map[string]string{"name": "models/abc", "model_definition_name": "local"}, []byte("zip")},
		"bad visibility": {map[string]string{"name": "models/abc", "model_definition_name": "model-definitions/local", "visibility": "secret"}, []byte("zip")},
		"no file":        {validFields("abc"), nil},
	}
	for name, c := range cases {
		resp, body := postForm(t, server.URL, c.fields, c.file, nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d %s", name, resp.StatusCode, body)
		}
	}

	resp, err := http.Post(server.URL+modelapi.CreateModelMultipartPath, "application/json", bytes.NewBufferString("{}"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for non multipart, got %d", resp.StatusCode)
	}
}

func startService(t *testing.T) (*Local, *modelapi.GrpcClient) {
	local, err := StartLocal(nil)
	if err != nil {
		t.Fatal(err)
	}
	client, err := modelapi.MakeConnector(dialer.NewConstantResolver(local.GRPCAddr), 5*time.Second, 5*time.Second).
		Dial(context.Background())
	if err != nil {
		local.Stop()
		t.Fatal(err)
	}
	return local, client
}

func TestGRPCUpdateAndDelete(t *testing.T) {
	local, client := startService(t)
	defer local.Stop()
	defer client.Close()

	created, err := local.Store.Create(DefaultOwner, NewModel{ID: "abc1234567", Description: "old", ModelDefinition: "model-definitions/local"})
	if err != nil {
		t.Fatal(err)
	}

	res := client.UpdateModel(context.Background(), &modelpb.Model{Name: "models/abc1234567", Description: "new_description"}, "description")
	if !res.OK() {
		t.Fatalf("update failed: %v", res.Err)
	}
	m := res.Model()
	if m.Description != "new_description" || m.Uid != created.Uid || m.ModelDefinition != "model-definitions/local" {
		t.Fatalf("unexpected updated model %v", m)
	}

	res = client.UpdateModel(context.Background(), &modelpb.Model{Name: "models/abc1234567", Id: "other"}, "id")
	if res.Code != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument for immutable path, got %v", res.Code)
	}
	res = client.UpdateModel(context.Background(), &modelpb.Model{Name: "models/missing"}, "description")
	if res.Code != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", res.Code)
	}

	if del := client.DeleteModel(context.Background(), "models/abc1234567"); !del.OK() {
		t.Fatalf("delete failed: %v", del.Err)
	}
	if del := client.DeleteModel(context.Background(), "models/abc1234567"); del.Code != codes.NotFound {
		t.Fatalf("expected NotFound on second delete, got %v", del.Code)
	}
}

func TestGRPCOwnerMetadata(t *testing.T) {
	local, client := startService(t)
	defer local.Stop()
	defer client.Close()

	if _, err := local.Store.Create("users/alice", NewModel{ID: "m1"}); err != nil {
		t.Fatal(err)
	}
	if del := client.DeleteModel(context.Background(), "models/m1"); del.Code != codes.NotFound {
		t.Fatalf("default owner should not see alice's model, got %v", del.Code)
	}
	client.WithMetadata(metadata.Pairs(modelapi.OwnerIDHeader, "alice"))
	if del := client.DeleteModel(context.Background(), "models/m1"); !del.OK() {
		t.Fatalf("delete as alice failed: %v", del.Err)
	}
}

func TestSinglePortServer(t *testing.T) {
	reg := stats.NewFinagleStatsRegistry()
	s := NewServer(stats.NewCustomStatsReceiver(func() stats.StatsRegistry { return reg }))
	server := httptest.NewServer(s.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + modelapi.HealthPath)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health returned %d", resp.StatusCode)
	}

	resp, _ = postForm(t, server.URL, validFields("single"), []byte("zip"), nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create through single port returned %d", resp.StatusCode)
	}
	stats.VerifyStats("single port", reg, t, map[string]stats.Rule{
		stats.FakeCreateRequestCounter: {Checker: stats.Int64EqTest, Value: 1},
		stats.FakeModelCountGauge:      {Checker: stats.Int64EqTest, Value: 1},
	})
}

func TestUpdatePreservesFields(t *testing.T) {
	svc := NewModelService(NewStore(nil), nil).(*modelService)
	properties := gopter.NewProperties(nil)
	properties.Property("description mask changes only description", prop.ForAll(
		func(id, oldDesc, newDesc string) bool {
			created, err := svc.store.Create(DefaultOwner, NewModel{ID: id, Description: oldDesc, ModelDefinition: "model-definitions/local"})
			if err != nil {
				return false
			}
			defer svc.store.Delete(DefaultOwner, id)

			resp, err := svc.UpdateModel(context.Background(), &modelpb.UpdateModelRequest{
				Model:      &modelpb.Model{Name: "models/" + id, Description: newDesc, ModelDefinition: "model-definitions/other", Visibility: modelpb.Model_VISIBILITY_PUBLIC},
				UpdateMask: &field_mask.FieldMask{Paths: []string{"description"}},
			})
			if err != nil {
				return false
			}
			m := resp.Model
			return m.Description == newDesc &&
				m.Uid == created.Uid && m.Id == id &&
				m.ModelDefinition == created.ModelDefinition &&
				m.Visibility == created.Visibility &&
				m.User == created.User
		},
		gen.Identifier(),
		gen.AnyString(),
		gen.AlphaString(),
	))
	properties.TestingRun(t)
}

func TestUpdateRequiresMask(t *testing.T) {
	svc := NewModelService(NewStore(nil), nil)
	_, err := svc.UpdateModel(context.Background(), &modelpb.UpdateModelRequest{Model: &modelpb.Model{Name: "models/a"}})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
	_, err = svc.UpdateModel(context.Background(), &modelpb.UpdateModelRequest{})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}
