package fake

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/golang/protobuf/jsonpb"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/twitter/modelcheck/common/stats"
	"github.com/twitter/modelcheck/modelapi"
	"github.com/twitter/modelcheck/modelapi/modelpb"
)

const maxUploadBytes = 4 << 20

var visibilities = map[string]modelpb.Model_Visibility{
	"public":  modelpb.Model_VISIBILITY_PUBLIC,
	"private": modelpb.Model_VISIBILITY_PRIVATE,
}

// Problem is the JSON error body of the REST surface.
type Problem struct {
	Status int32  `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func makeJSONResponse(w http.ResponseWriter, code int, title string, detail string) {
	w.Header().Add("Content-Type", "application/json+problem")
	w.WriteHeader(code)
	obj, _ := json.Marshal(Problem{Status: int32(code), Title: title, Detail: detail})
	_, _ = w.Write(obj)
}

type restHandler struct {
	store    *Store
	creates  stats.Counter
	mux      *http.ServeMux
	marshal  jsonpb.Marshaler
	maxBytes int64
}

// NewRESTHandler serves the multipart create and health endpoints.
func NewRESTHandler(store *Store, stat stats.StatsReceiver) http.Handler {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	h := &restHandler{
		store:    store,
		creates:  stat.Counter(stats.FakeCreateRequestCounter),
		mux:      http.NewServeMux(),
		marshal:  jsonpb.Marshaler{OrigName: true},
		maxBytes: maxUploadBytes,
	}
	h.mux.HandleFunc(modelapi.CreateModelMultipartPath, h.createModelMultipart)
	h.mux.HandleFunc(modelapi.HealthPath, h.health)
	return h
}

func (h *restHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *restHandler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"health_check_response":{"status":"SERVING_STATUS_SERVING"}}`)
}

// ownerOf maps the owner-id header to a user name, DefaultOwner when absent.
func ownerOf(id string) string {
	if id = strings.TrimSpace(id); id == "" {
		return DefaultOwner
	}
	return modelapi.UserCollection + id
}

func (h *restHandler) createModelMultipart(w http.ResponseWriter, req *http.Request) {
	h.creates.Inc(1)
	if req.Method != "POST" {
		makeJSONResponse(w, http.StatusMethodNotAllowed, "Method not allowed", req.Method+" is not supported")
		return
	}
	if !strings.Contains(req.Header.Get("Content-Type"), "multipart/form-data") {
		w.Header().Add("Content-Type", "application/json+problem")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := req.ParseMultipartForm(h.maxBytes); err != nil {
		makeJSONResponse(w, http.StatusBadRequest, "File Error", fmt.Sprintf("Error while reading form from request %v", err))
		return
	}
	owner := ownerOf(req.Header.Get(modelapi.OwnerIDHeader))

	modelID := req.FormValue("id")
	if name := req.FormValue("name"); name != "" {
		id, err := modelapi.GetID(name)
		if err != nil {
			makeJSONResponse(w, http.StatusBadRequest, "Invalid parameter", status.Convert(err).Message())
			return
		}
		modelID = id
	}
	if modelID == "" {
		makeJSONResponse(w, http.StatusBadRequest, "Missing parameter", "Model name need to be specified")
		return
	}
	if !modelapi.ValidModelID(modelID) {
		makeJSONResponse(w, http.StatusBadRequest, "Invalid parameter", "Model id "+modelID+" is invalid")
		return
	}

	modelDefinitionName := req.FormValue("model_definition_name")
	if modelDefinitionName == "" {
		modelDefinitionName = req.FormValue("model_definition")
	}
	if modelDefinitionName == "" {
		makeJSONResponse(w, http.StatusBadRequest, "Missing parameter", "modelDefinitionName need to be specified")
		return
	}
	if _, err := modelapi.GetDefinitionID(modelDefinitionName); err != nil {
		makeJSONResponse(w, http.StatusBadRequest, "Invalid parameter", status.Convert(err).Message())
		return
	}

	visibility := modelpb.Model_VISIBILITY_PRIVATE
	if viz := req.FormValue("visibility"); viz != "" {
		v, ok := visibilities[viz]
		if !ok {
			makeJSONResponse(w, http.StatusBadRequest, "Invalid parameter", "Visibility is invalid")
			return
		}
		visibility = v
	}

	file, fileHeader, err := req.FormFile("content")
	if err != nil {
		makeJSONResponse(w, http.StatusBadRequest, "File Error", fmt.Sprintf("Error while reading file from request %v", err))
		return
	}
	defer file.Close()
	content, err := ioutil.ReadAll(file)
	if err != nil || len(content) == 0 {
		makeJSONResponse(w, http.StatusBadRequest, "File Error", "Error reading input file")
		return
	}

	m, err := h.store.Create(owner, NewModel{
		ID:              modelID,
		Description:     req.FormValue("description"),
		ModelDefinition: modelDefinitionName,
		Visibility:      visibility,
		FileName:        fileHeader.Filename,
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			makeJSONResponse(w, http.StatusConflict, "Add Model Error", status.Convert(err).Message())
			return
		}
		makeJSONResponse(w, http.StatusInternalServerError, "Add Model Error", err.Error())
		return
	}
	log.WithFields(log.Fields{"model": m.Name, "owner": owner, "bytes": len(content)}).Debug("fake created model")

	body, err := h.marshal.MarshalToString(&modelpb.CreateModelMultipartResponse{Model: m})
	if err != nil {
		makeJSONResponse(w, http.StatusInternalServerError, "Add Model Error", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write([]byte(body))
}
