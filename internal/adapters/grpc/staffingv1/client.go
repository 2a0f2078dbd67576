package staffingv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// StaffingServiceClient は StaffingService のクライアント API です。
type StaffingServiceClient interface {
	CalculateContractPrice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CreateAllocation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	UpdateAllocation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ValidateCascadeCreation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CreateCascade(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetEmployeeCompensation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetPostCapacity(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type staffingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewStaffingServiceClient は cc をラップします。
func NewStaffingServiceClient(cc grpc.ClientConnInterface) StaffingServiceClient {
	return &staffingServiceClient{cc: cc}
}

func (c *staffingServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *staffingServiceClient) CalculateContractPrice(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CalculateContractPriceMethod, in, opts)
}

func (c *staffingServiceClient) CreateAllocation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CreateAllocationMethod, in, opts)
}

func (c *staffingServiceClient) UpdateAllocation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, UpdateAllocationMethod, in, opts)
}

func (c *staffingServiceClient) ValidateCascadeCreation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ValidateCascadeCreationMethod, in, opts)
}

func (c *staffingServiceClient) CreateCascade(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CreateCascadeMethod, in, opts)
}

func (c *staffingServiceClient) GetEmployeeCompensation(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetEmployeeCompensationMethod, in, opts)
}

func (c *staffingServiceClient) GetPostCapacity(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetPostCapacityMethod, in, opts)
}
