package modelapi_test

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/net/context"

	"github.com/twitter/modelcheck/modelapi"
	"github.com/twitter/modelcheck/modelapi/mock_modelapi"
	"github.com/twitter/modelcheck/modelapi/modelpb"
)

func testForm() modelapi.CreateModelForm {
	return modelapi.CreateModelForm{
		Name:                "models/abc1234567",
		Description:         "XyZ0123456789abcdefg",
		ModelDefinitionName: "model-definitions/local",
		FileName:            "dummy-cls-model.zip",
		Content:             []byte("PK\x03\x04 not really a zip"),
	}
}

func TestCreateModelMultipart(t *testing.T) {
	form := testForm()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != modelapi.CreateModelMultipartPath {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary=") {
			t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		if r.Header.Get(modelapi.OwnerIDHeader) != "local-user" {
			t.Errorf("missing owner header")
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatal(err)
		}
		if r.FormValue("name") != form.Name || r.FormValue("description") != form.Description ||
			r.FormValue("model_definition_name") != form.ModelDefinitionName {
			t.Errorf("unexpected form values %v", r.MultipartForm.Value)
		}
		file, header, err := r.FormFile("content")
		if err != nil {
			t.Fatal(err)
		}
		content, _ := ioutil.ReadAll(file)
		if header.Filename != form.FileName || string(content) != string(form.Content) {
			t.Errorf("unexpected file %s %q", header.Filename, content)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"model":{"name":%q,"id":"abc1234567","visibility":"VISIBILITY_PRIVATE","create_time":"2022-05-01T10:00:00Z"}}`, form.Name)
	}))
	defer server.Close()

	header := http.Header{}
	header.Set(modelapi.OwnerIDHeader, "local-user")
	client := modelapi.NewRestClient(server.URL+"/", modelapi.MakePesterClient(1), header)
	resp, err := client.CreateModelMultipart(context.Background(), form)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated || resp.DecodeErr != nil {
		t.Fatalf("unexpected response %d %v", resp.StatusCode, resp.DecodeErr)
	}
	m := resp.Model()
	if m.GetName() != form.Name || m.GetId() != "abc1234567" || m.GetVisibility() != modelpb.Model_VISIBILITY_PRIVATE {
		t.Fatalf("unexpected model %v", m)
	}
	if m.GetCreateTime() == nil || m.GetUpdateTime() != nil {
		t.Fatalf("unexpected timestamps %v", m)
	}
}

func TestCreateModelMultipartProblemBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"status":409,"title":"Add Model Error","detail":"model already exists"}`)
	}))
	defer server.Close()

	resp, err := modelapi.NewRestClient(server.URL, http.DefaultClient, nil).CreateModelMultipart(context.Background(), testForm())
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusConflict || resp.Model() != nil {
		t.Fatalf("unexpected response %d %v", resp.StatusCode, resp.Model())
	}
}

func TestCreateModelMultipartBadBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, `<html>bad gateway</html>`)
	}))
	defer server.Close()

	resp, err := modelapi.NewRestClient(server.URL, http.DefaultClient, nil).CreateModelMultipart(context.Background(), testForm())
	if err != nil {
		t.Fatalf("a malformed body should not be an error: %v", err)
	}
	if resp.DecodeErr == nil || resp.Model() != nil || string(resp.Body) != "<html>bad gateway</html>" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestCreateModelMultipartTransportError(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	client := mock_modelapi.NewMockClient(mockCtrl)
	client.EXPECT().Do(gomock.Any()).Return(nil, errors.New("connection refused"))

	resp, err := modelapi.NewRestClient("http://localhost:8083", client, nil).CreateModelMultipart(context.Background(), testForm())
	if err == nil || resp != nil {
		t.Fatalf("expected transport error, got %v %v", resp, err)
	}
	var nilResp *modelapi.RestResponse
	if nilResp.Model() != nil {
		t.Fatal("nil response should have no model")
	}
}

func TestPesterLogHookLevels(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	single := modelapi.MakePesterClient(1)
	single.LogHook(pester.ErrEntry{Verb: "POST", URL: "http://localhost/v1alpha/models:multipart", Retry: 1, Err: errors.New("refused")})
	entry := hook.LastEntry()
	if entry == nil || entry.Level != log.ErrorLevel || strings.Contains(entry.Message, "retrying") {
		t.Fatalf("single try should log a final failure, got %+v", entry)
	}

	retrying := modelapi.MakePesterClient(3)
	retrying.LogHook(pester.ErrEntry{Verb: "POST", URL: "http://localhost/v1alpha/models:multipart", Retry: 1, Err: errors.New("refused")})
	entry = hook.LastEntry()
	if entry == nil || entry.Level != log.WarnLevel || !strings.Contains(entry.Message, "Attempt 1 of 3 failed, retrying") {
		t.Fatalf("first of three tries should log a retry, got %+v", entry)
	}
	retrying.LogHook(pester.ErrEntry{Verb: "POST", URL: "http://localhost/v1alpha/models:multipart", Retry: 3, Err: errors.New("refused")})
	if entry = hook.LastEntry(); entry.Level != log.ErrorLevel {
		t.Fatalf("last try should log at error level, got %v", entry.Level)
	}
}
