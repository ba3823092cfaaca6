package modelapi

import (
	"regexp"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ModelCollection           = "models/"
	ModelDefinitionCollection = "model-definitions/"
	UserCollection            = "users/"
)

// Model ids must match this, see the create handler of the model service.
var modelIDRegexp = regexp.MustCompile(`^[A-Za-z0-9][a-zA-Z0-9_.-]*$`)

// ModelName returns the resource name of the model with the given id.
func ModelName(id string) string {
	return ModelCollection + id
}

func GetID(name string) (string, error) {
	id := strings.TrimPrefix(name, ModelCollection)
	if !strings.HasPrefix(name, ModelCollection) || id == "" {
		return "", status.Error(codes.InvalidArgument, "Error when extract models resource id")
	}
	return id, nil
}

func GetDefinitionID(name string) (string, error) {
	id := strings.TrimPrefix(name, ModelDefinitionCollection)
	if !strings.HasPrefix(name, ModelDefinitionCollection) || id == "" {
		return "", status.Error(codes.InvalidArgument, "Error when extract model-definitions resource id")
	}
	return id, nil
}

// ValidModelID reports whether id is acceptable as a model id.
func ValidModelID(id string) bool {
	return modelIDRegexp.MatchString(id)
}
