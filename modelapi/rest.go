package modelapi

import (
	"bytes"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/golang/protobuf/jsonpb"
	"github.com/pkg/errors"
	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/twitter/modelcheck/modelapi/modelpb"
)

const (
	CreateModelMultipartPath = "/v1alpha/models:multipart"
	HealthPath               = "/v1alpha/health/model"

	OwnerIDHeader = "owner-id"
)

// Client is the part of http.Client (and pester.Client) we use.
type Client interface {
	Do(req *http.Request) (resp *http.Response, err error)
}

// MakePesterClient returns a pester client making tries attempts per request
// with exponential backoff (0 and 1 both mean 1 try total).
func MakePesterClient(tries int) *pester.Client {
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = tries
	client.KeepLog = false
	if tries < 1 {
		tries = 1
	}
	client.LogHook = func(e pester.ErrEntry) {
		// Retry is the 1-based attempt number.
		if e.Retry < tries {
			log.Warnf("Attempt %d of %d failed, retrying %s %s: %v", e.Retry, tries, e.Verb, e.URL, e.Err)
			return
		}
		log.Errorf("Attempt %d of %d failed %s %s: %v", e.Retry, tries, e.Verb, e.URL, e.Err)
	}
	return client
}

// CreateModelForm is the multipart form of a model creation.
type CreateModelForm struct {
	Name                string
	Description         string
	ModelDefinitionName string
	FileName            string
	Content             []byte
}

// Encode writes the form, returning the body and its content type.
func (f CreateModelForm) Encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, field := range [][2]string{
		{"name", f.Name},
		{"description", f.Description},
		{"model_definition_name", f.ModelDefinitionName},
	} {
		if err := w.WriteField(field[0], field[1]); err != nil {
			return nil, "", err
		}
	}
	part, err := w.CreateFormFile("content", f.FileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(f.Content); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

// RestResponse is the snapshot of a REST call the checks run against.
// DecodeErr is kept rather than returned so a malformed body fails checks
// instead of aborting the scenario.
type RestResponse struct {
	StatusCode int
	Body       []byte
	Message    *modelpb.CreateModelMultipartResponse
	DecodeErr  error
}

// Model returns the decoded model or nil.
func (r *RestResponse) Model() *modelpb.Model {
	if r == nil {
		return nil
	}
	return r.Message.GetModel()
}

type RestClient struct {
	apiHost string
	client  Client
	header  http.Header
}

// NewRestClient sends requests to apiHost through client. header is added to
// every request and may be nil.
func NewRestClient(apiHost string, client Client, header http.Header) *RestClient {
	return &RestClient{
		apiHost: strings.TrimSuffix(apiHost, "/"),
		client:  client,
		header:  header,
	}
}

func (c *RestClient) APIHost() string {
	return c.apiHost
}

// CreateModelMultipart posts form to the multipart create endpoint. An error is
// returned only when no response was received.
func (c *RestClient) CreateModelMultipart(ctx context.Context, form CreateModelForm) (*RestResponse, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, errors.Wrap(err, "encoding multipart form")
	}
	uri := c.apiHost + CreateModelMultipartPath
	req, err := http.NewRequest("POST", uri, body)
	if err != nil {
		return nil, err
	}
	req = req.WithContext(ctx)
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", contentType)

	log.Debugf("POST %s name=%s (%d bytes)", uri, form.Name, body.Len())
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "POST %s", uri)
	}
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "reading response of POST %s", uri)
	}
	return decodeCreateResponse(resp.StatusCode, data), nil
}

func decodeCreateResponse(code int, data []byte) *RestResponse {
	r := &RestResponse{StatusCode: code, Body: data, Message: &modelpb.CreateModelMultipartResponse{}}
	if len(data) == 0 {
		r.DecodeErr = errors.New("empty response body")
		return r
	}
	u := jsonpb.Unmarshaler{AllowUnknownFields: true}
	if err := u.Unmarshal(bytes.NewReader(data), r.Message); err != nil {
		r.DecodeErr = errors.Wrap(err, "decoding create response")
	}
	return r
}
