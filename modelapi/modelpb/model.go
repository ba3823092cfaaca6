// Package modelpb holds the instill.model.v1alpha messages and the ModelService
// stubs used by modelcheck. The layout follows protoc-gen-go output for
// modelapi/proto/model/v1alpha/model_service.proto so the types work with the
// golang/protobuf runtime (wire codec, jsonpb, text format) through struct tags.
// Keep field numbers in sync with the .proto file.
package modelpb

import (
	proto "github.com/golang/protobuf/proto"
	_struct "github.com/golang/protobuf/ptypes/struct"
	timestamp "github.com/golang/protobuf/ptypes/timestamp"
	field_mask "google.golang.org/genproto/protobuf/field_mask"
)

type Model_Visibility int32

const (
	Model_VISIBILITY_UNSPECIFIED Model_Visibility = 0
	Model_VISIBILITY_PRIVATE     Model_Visibility = 1
	Model_VISIBILITY_PUBLIC      Model_Visibility = 2
)

var Model_Visibility_name = map[int32]string{
	0: "VISIBILITY_UNSPECIFIED",
	1: "VISIBILITY_PRIVATE",
	2: "VISIBILITY_PUBLIC",
}

var Model_Visibility_value = map[string]int32{
	"VISIBILITY_UNSPECIFIED": 0,
	"VISIBILITY_PRIVATE":     1,
	"VISIBILITY_PUBLIC":      2,
}

func (x Model_Visibility) String() string {
	return proto.EnumName(Model_Visibility_name, int32(x))
}

type Model struct {
	Name                 string               `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Uid                  string               `protobuf:"bytes,2,opt,name=uid,proto3" json:"uid,omitempty"`
	Id                   string               `protobuf:"bytes,3,opt,name=id,proto3" json:"id,omitempty"`
	Description          string               `protobuf:"bytes,4,opt,name=description,proto3" json:"description,omitempty"`
	ModelDefinition      string               `protobuf:"bytes,5,opt,name=model_definition,json=modelDefinition,proto3" json:"model_definition,omitempty"`
	Configuration        *_struct.Struct      `protobuf:"bytes,6,opt,name=configuration,proto3" json:"configuration,omitempty"`
	Visibility           Model_Visibility     `protobuf:"varint,7,opt,name=visibility,proto3,enum=instill.model.v1alpha.Model_Visibility" json:"visibility,omitempty"`
	User                 string               `protobuf:"bytes,8,opt,name=user,proto3" json:"user,omitempty"`
	Org                  string               `protobuf:"bytes,9,opt,name=org,proto3" json:"org,omitempty"`
	CreateTime           *timestamp.Timestamp `protobuf:"bytes,10,opt,name=create_time,json=createTime,proto3" json:"create_time,omitempty"`
	UpdateTime           *timestamp.Timestamp `protobuf:"bytes,11,opt,name=update_time,json=updateTime,proto3" json:"update_time,omitempty"`
	XXX_NoUnkeyedLiteral struct{}             `json:"-"`
	XXX_unrecognized     []byte               `json:"-"`
	XXX_sizecache        int32                `json:"-"`
}

func (m *Model) Reset()         { *m = Model{} }
func (m *Model) String() string { return proto.CompactTextString(m) }
func (*Model) ProtoMessage()    {}

func (m *Model) GetName() string {
	if m != nil {
		return m.Name
	}
	return ""
}

func (m *Model) GetUid() string {
	if m != nil {
		return m.Uid
	}
	return ""
}

func (m *Model) GetId() string {
	if m != nil {
		return m.Id
	}
	return ""
}

func (m *Model) GetDescription() string {
	if m != nil {
		return m.Description
	}
	return ""
}

func (m *Model) GetModelDefinition() string {
	if m != nil {
		return m.ModelDefinition
	}
	return ""
}

func (m *Model) GetConfiguration() *_struct.Struct {
	if m != nil {
		return m.Configuration
	}
	return nil
}

func (m *Model) GetVisibility() Model_Visibility {
	if m != nil {
		return m.Visibility
	}
	return Model_VISIBILITY_UNSPECIFIED
}

func (m *Model) GetUser() string {
	if m != nil {
		return m.User
	}
	return ""
}

func (m *Model) GetOrg() string {
	if m != nil {
		return m.Org
	}
	return ""
}

func (m *Model) GetCreateTime() *timestamp.Timestamp {
	if m != nil {
		return m.CreateTime
	}
	return nil
}

func (m *Model) GetUpdateTime() *timestamp.Timestamp {
	if m != nil {
		return m.UpdateTime
	}
	return nil
}

// Body returned by POST /v1alpha/models:multipart
type CreateModelMultipartResponse struct {
	Model                *Model   `protobuf:"bytes,1,opt,name=model,proto3" json:"model,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *CreateModelMultipartResponse) Reset()         { *m = CreateModelMultipartResponse{} }
func (m *CreateModelMultipartResponse) String() string { return proto.CompactTextString(m) }
func (*CreateModelMultipartResponse) ProtoMessage()    {}

func (m *CreateModelMultipartResponse) GetModel() *Model {
	if m != nil {
		return m.Model
	}
	return nil
}

type UpdateModelRequest struct {
	Model                *Model                `protobuf:"bytes,1,opt,name=model,proto3" json:"model,omitempty"`
	UpdateMask           *field_mask.FieldMask `protobuf:"bytes,2,opt,name=update_mask,json=updateMask,proto3" json:"update_mask,omitempty"`
	XXX_NoUnkeyedLiteral struct{}              `json:"-"`
	XXX_unrecognized     []byte                `json:"-"`
	XXX_sizecache        int32                 `json:"-"`
}

func (m *UpdateModelRequest) Reset()         { *m = UpdateModelRequest{} }
func (m *UpdateModelRequest) String() string { return proto.CompactTextString(m) }
func (*UpdateModelRequest) ProtoMessage()    {}

func (m *UpdateModelRequest) GetModel() *Model {
	if m != nil {
		return m.Model
	}
	return nil
}

func (m *UpdateModelRequest) GetUpdateMask() *field_mask.FieldMask {
	if m != nil {
		return m.UpdateMask
	}
	return nil
}

type UpdateModelResponse struct {
	Model                *Model   `protobuf:"bytes,1,opt,name=model,proto3" json:"model,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *UpdateModelResponse) Reset()         { *m = UpdateModelResponse{} }
func (m *UpdateModelResponse) String() string { return proto.CompactTextString(m) }
func (*UpdateModelResponse) ProtoMessage()    {}

func (m *UpdateModelResponse) GetModel() *Model {
	if m != nil {
		return m.Model
	}
	return nil
}

type DeleteModelRequest struct {
	Name                 string   `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *DeleteModelRequest) Reset()         { *m = DeleteModelRequest{} }
func (m *DeleteModelRequest) String() string { return proto.CompactTextString(m) }
func (*DeleteModelRequest) ProtoMessage()    {}

func (m *DeleteModelRequest) GetName() string {
	if m != nil {
		return m.Name
	}
	return ""
}

type DeleteModelResponse struct {
	XXX_NoUnkeyedLiteral struct{} `json:"-"`
	XXX_unrecognized     []byte   `json:"-"`
	XXX_sizecache        int32    `json:"-"`
}

func (m *DeleteModelResponse) Reset()         { *m = DeleteModelResponse{} }
func (m *DeleteModelResponse) String() string { return proto.CompactTextString(m) }
func (*DeleteModelResponse) ProtoMessage()    {}

func init() {
	proto.RegisterEnum("instill.model.v1alpha.Model_Visibility", Model_Visibility_name, Model_Visibility_value)
	proto.RegisterType((*Model)(nil), "instill.model.v1alpha.Model")
	proto.RegisterType((*CreateModelMultipartResponse)(nil), "instill.model.v1alpha.CreateModelMultipartResponse")
	proto.RegisterType((*UpdateModelRequest)(nil), "instill.model.v1alpha.UpdateModelRequest")
	proto.RegisterType((*UpdateModelResponse)(nil), "instill.model.v1alpha.UpdateModelResponse")
	proto.RegisterType((*DeleteModelRequest)(nil), "instill.model.v1alpha.DeleteModelRequest")
	proto.RegisterType((*DeleteModelResponse)(nil), "instill.model.v1alpha.DeleteModelResponse")
}
