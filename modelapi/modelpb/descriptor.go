package modelpb

import (
	"bytes"
	"compress/gzip"

	proto "github.com/golang/protobuf/proto"
	descriptor "github.com/golang/protobuf/protoc-gen-go/descriptor"
)

// fileDescriptor_model_service is the gzipped FileDescriptorProto of
// model_service.proto, registered so server reflection can describe the service.
var fileDescriptor_model_service = mustGzip(modelServiceFileDescriptor())

func (*Model) Descriptor() ([]byte, []int) {
	return fileDescriptor_model_service, []int{0}
}

func (Model_Visibility) EnumDescriptor() ([]byte, []int) {
	return fileDescriptor_model_service, []int{0, 0}
}

func (*CreateModelMultipartResponse) Descriptor() ([]byte, []int) {
	return fileDescriptor_model_service, []int{1}
}

func (*UpdateModelRequest) Descriptor() ([]byte, []int) {
	return fileDescriptor_model_service, []int{2}
}

func (*UpdateModelResponse) Descriptor() ([]byte, []int) {
	return fileDescriptor_model_service, []int{3}
}

func (*DeleteModelRequest) Descriptor() ([]byte, []int) {
	return fileDescriptor_model_service, []int{4}
}

func (*DeleteModelResponse) Descriptor() ([]byte, []int) {
	return fileDescriptor_model_service, []int{5}
}

func init() { proto.RegisterFile(modelServiceDescription, fileDescriptor_model_service) }

const packagePrefix = ".instill.model.v1alpha."

func scalarField(name, jsonName string, number int32) *descriptor.FieldDescriptorProto {
	return &descriptor.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(jsonName),
		Number:   proto.Int32(number),
		Label:    descriptor.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:     descriptor.FieldDescriptorProto_TYPE_STRING.Enum(),
	}
}

func typedField(name, jsonName string, number int32, typ descriptor.FieldDescriptorProto_Type, typeName string) *descriptor.FieldDescriptorProto {
	f := scalarField(name, jsonName, number)
	f.Type = typ.Enum()
	f.TypeName = proto.String(typeName)
	return f
}

func messageField(name, jsonName string, number int32, typeName string) *descriptor.FieldDescriptorProto {
	return typedField(name, jsonName, number, descriptor.FieldDescriptorProto_TYPE_MESSAGE, typeName)
}

func modelField(number int32) *descriptor.FieldDescriptorProto {
	return messageField("model", "model", number, packagePrefix+"Model")
}

// Mirrors modelapi/proto/model/v1alpha/model_service.proto.
func modelServiceFileDescriptor() *descriptor.FileDescriptorProto {
	visibility := &descriptor.EnumDescriptorProto{Name: proto.String("Visibility")}
	for i := int32(0); i < int32(len(Model_Visibility_name)); i++ {
		visibility.Value = append(visibility.Value, &descriptor.EnumValueDescriptorProto{
			Name:   proto.String(Model_Visibility_name[i]),
			Number: proto.Int32(i),
		})
	}

	model := &descriptor.DescriptorProto{
		Name: proto.String("Model"),
		Field: []*descriptor.FieldDescriptorProto{
			scalarField("name", "name", 1),
			scalarField("uid", "uid", 2),
			scalarField("id", "id", 3),
			scalarField("description", "description", 4),
			scalarField("model_definition", "modelDefinition", 5),
			messageField("configuration", "configuration", 6, ".google.protobuf.Struct"),
			typedField("visibility", "visibility", 7, descriptor.FieldDescriptorProto_TYPE_ENUM, packagePrefix+"Model.Visibility"),
			scalarField("user", "user", 8),
			scalarField("org", "org", 9),
			messageField("create_time", "createTime", 10, ".google.protobuf.Timestamp"),
			messageField("update_time", "updateTime", 11, ".google.protobuf.Timestamp"),
		},
		EnumType: []*descriptor.EnumDescriptorProto{visibility},
	}

	method := func(name, in, out string) *descriptor.MethodDescriptorProto {
		return &descriptor.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(packagePrefix + in),
			OutputType: proto.String(packagePrefix + out),
		}
	}

	return &descriptor.FileDescriptorProto{
		Name:       proto.String(modelServiceDescription),
		Package:    proto.String("instill.model.v1alpha"),
		Dependency: []string{"google/protobuf/field_mask.proto", "google/protobuf/struct.proto", "google/protobuf/timestamp.proto"},
		MessageType: []*descriptor.DescriptorProto{
			model,
			{Name: proto.String("CreateModelMultipartResponse"), Field: []*descriptor.FieldDescriptorProto{modelField(1)}},
			{Name: proto.String("UpdateModelRequest"), Field: []*descriptor.FieldDescriptorProto{
				modelField(1),
				messageField("update_mask", "updateMask", 2, ".google.protobuf.FieldMask"),
			}},
			{Name: proto.String("UpdateModelResponse"), Field: []*descriptor.FieldDescriptorProto{modelField(1)}},
			{Name: proto.String("DeleteModelRequest"), Field: []*descriptor.FieldDescriptorProto{scalarField("name", "name", 1)}},
			{Name: proto.String("DeleteModelResponse")},
		},
		Service: []*descriptor.ServiceDescriptorProto{{
			Name: proto.String("ModelService"),
			Method: []*descriptor.MethodDescriptorProto{
				method("UpdateModel", "UpdateModelRequest", "UpdateModelResponse"),
				method("DeleteModel", "DeleteModelRequest", "DeleteModelResponse"),
			},
		}},
		Options: &descriptor.FileOptions{GoPackage: proto.String("github.com/twitter/modelcheck/modelapi/modelpb")},
		Syntax:  proto.String("proto3"),
	}
}

func mustGzip(fd *descriptor.FileDescriptorProto) []byte {
	raw, err := proto.Marshal(fd)
	if err != nil {
		panic(err)
	}
	var buf bytes.Buffer
	w, _ := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if _, err := w.Write(raw); err != nil {
		panic(err)
	}
	if err := w.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
