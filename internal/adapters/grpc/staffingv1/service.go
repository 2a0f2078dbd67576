// Package staffingv1 は staffing.v1.StaffingService gRPC サービスを定義します。
//
// リクエストとレスポンスは google.protobuf.Struct メッセージのため、生成されたメッセージ型なしで
// 標準の protobuf コーデックを利用できます。
package staffingv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName は gRPC サービスの完全修飾名です。
const ServiceName = "staffing.v1.StaffingService"

// 各メソッドの完全修飾名です。
const (
	CalculateContractPriceMethod  = "/" + ServiceName + "/CalculateContractPrice"
	CreateAllocationMethod        = "/" + ServiceName + "/CreateAllocation"
	UpdateAllocationMethod        = "/" + ServiceName + "/UpdateAllocation"
	ValidateCascadeCreationMethod = "/" + ServiceName + "/ValidateCascadeCreation"
	CreateCascadeMethod           = "/" + ServiceName + "/CreateCascade"
	GetEmployeeCompensationMethod = "/" + ServiceName + "/GetEmployeeCompensation"
	GetPostCapacityMethod         = "/" + ServiceName + "/GetPostCapacity"
)

// StaffingServiceServer は StaffingService のサーバー API です。
type StaffingServiceServer interface {
	CalculateContractPrice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateAllocation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateAllocation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ValidateCascadeCreation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateCascade(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetEmployeeCompensation(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPostCapacity(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedStaffingServiceServer はすべてのメソッドに Unimplemented を返します。
// メソッド追加時の前方互換性のために埋め込んで使います。
type UnimplementedStaffingServiceServer struct{}

func (UnimplementedStaffingServiceServer) CalculateContractPrice(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CalculateContractPrice not implemented")
}

func (UnimplementedStaffingServiceServer) CreateAllocation(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAllocation not implemented")
}

func (UnimplementedStaffingServiceServer) UpdateAllocation(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateAllocation not implemented")
}

func (UnimplementedStaffingServiceServer) ValidateCascadeCreation(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ValidateCascadeCreation not implemented")
}

func (UnimplementedStaffingServiceServer) CreateCascade(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateCascade not implemented")
}

func (UnimplementedStaffingServiceServer) GetEmployeeCompensation(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetEmployeeCompensation not implemented")
}

func (UnimplementedStaffingServiceServer) GetPostCapacity(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPostCapacity not implemented")
}

// RegisterStaffingServiceServer は srv を s に登録します。
func RegisterStaffingServiceServer(s grpc.ServiceRegistrar, srv StaffingServiceServer) {
	s.RegisterService(&StaffingService_ServiceDesc, srv)
}

type unaryCall func(StaffingServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(StaffingServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(StaffingServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// StaffingService_ServiceDesc は StaffingService の grpc.ServiceDesc です。
var StaffingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StaffingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CalculateContractPrice", Handler: unaryHandler(CalculateContractPriceMethod, StaffingServiceServer.CalculateContractPrice)},
		{MethodName: "CreateAllocation", Handler: unaryHandler(CreateAllocationMethod, StaffingServiceServer.CreateAllocation)},
		{MethodName: "UpdateAllocation", Handler: unaryHandler(UpdateAllocationMethod, StaffingServiceServer.UpdateAllocation)},
		{MethodName: "ValidateCascadeCreation", Handler: unaryHandler(ValidateCascadeCreationMethod, StaffingServiceServer.ValidateCascadeCreation)},
		{MethodName: "CreateCascade", Handler: unaryHandler(CreateCascadeMethod, StaffingServiceServer.CreateCascade)},
		{MethodName: "GetEmployeeCompensation", Handler: unaryHandler(GetEmployeeCompensationMethod, StaffingServiceServer.GetEmployeeCompensation)},
		{MethodName: "GetPostCapacity", Handler: unaryHandler(GetPostCapacityMethod, StaffingServiceServer.GetPostCapacity)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "staffing/v1/staffing.proto",
}
