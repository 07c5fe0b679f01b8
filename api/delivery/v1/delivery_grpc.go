package deliveryv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tailoringStorefront/api/rpc"
)

const ServiceName = "tailoring.delivery.v1.DeliveryService"

const (
	DeliveryService_GetProfile_FullMethodName           = "/" + ServiceName + "/GetProfile"
	DeliveryService_GetAssignedOrders_FullMethodName    = "/" + ServiceName + "/GetAssignedOrders"
	DeliveryService_UpdateDeliveryStatus_FullMethodName = "/" + ServiceName + "/UpdateDeliveryStatus"
	DeliveryService_SaveMeasurements_FullMethodName     = "/" + ServiceName + "/SaveMeasurements"
	DeliveryService_UpdateLocation_FullMethodName       = "/" + ServiceName + "/UpdateLocation"
)

// DeliveryServiceServer is the server API for DeliveryService.
type DeliveryServiceServer interface {
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	GetAssignedOrders(context.Context, *GetAssignedOrdersRequest) (*GetAssignedOrdersResponse, error)
	UpdateDeliveryStatus(context.Context, *UpdateDeliveryStatusRequest) (*UpdateDeliveryStatusResponse, error)
	SaveMeasurements(context.Context, *SaveMeasurementsRequest) (*SaveMeasurementsResponse, error)
	UpdateLocation(context.Context, *UpdateLocationRequest) (*UpdateLocationResponse, error)
	mustEmbedUnimplementedDeliveryServiceServer()
}

// UnimplementedDeliveryServiceServer must be embedded to have forward compatible implementations.
type UnimplementedDeliveryServiceServer struct{}

func (UnimplementedDeliveryServiceServer) GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedDeliveryServiceServer) GetAssignedOrders(context.Context, *GetAssignedOrdersRequest) (*GetAssignedOrdersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetAssignedOrders not implemented")
}
func (UnimplementedDeliveryServiceServer) UpdateDeliveryStatus(context.Context, *UpdateDeliveryStatusRequest) (*UpdateDeliveryStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateDeliveryStatus not implemented")
}
func (UnimplementedDeliveryServiceServer) SaveMeasurements(context.Context, *SaveMeasurementsRequest) (*SaveMeasurementsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SaveMeasurements not implemented")
}
func (UnimplementedDeliveryServiceServer) UpdateLocation(context.Context, *UpdateLocationRequest) (*UpdateLocationResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateLocation not implemented")
}
func (UnimplementedDeliveryServiceServer) mustEmbedUnimplementedDeliveryServiceServer() {}

// DeliveryService_ServiceDesc is the grpc.ServiceDesc for DeliveryService.
var DeliveryService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DeliveryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.UnaryMethod(ServiceName, "GetProfile", DeliveryServiceServer.GetProfile),
		rpc.UnaryMethod(ServiceName, "GetAssignedOrders", DeliveryServiceServer.GetAssignedOrders),
		rpc.UnaryMethod(ServiceName, "UpdateDeliveryStatus", DeliveryServiceServer.UpdateDeliveryStatus),
		rpc.UnaryMethod(ServiceName, "SaveMeasurements", DeliveryServiceServer.SaveMeasurements),
		rpc.UnaryMethod(ServiceName, "UpdateLocation", DeliveryServiceServer.UpdateLocation),
	},
	Metadata: "tailoring/delivery/v1/delivery.proto",
}

func RegisterDeliveryServiceServer(s grpc.ServiceRegistrar, srv DeliveryServiceServer) {
	s.RegisterService(&DeliveryService_ServiceDesc, srv)
}

// DeliveryServiceClient is the client API for DeliveryService.
type DeliveryServiceClient interface {
	GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error)
	GetAssignedOrders(ctx context.Context, in *GetAssignedOrdersRequest, opts ...grpc.CallOption) (*GetAssignedOrdersResponse, error)
	UpdateDeliveryStatus(ctx context.Context, in *UpdateDeliveryStatusRequest, opts ...grpc.CallOption) (*UpdateDeliveryStatusResponse, error)
	SaveMeasurements(ctx context.Context, in *SaveMeasurementsRequest, opts ...grpc.CallOption) (*SaveMeasurementsResponse, error)
	UpdateLocation(ctx context.Context, in *UpdateLocationRequest, opts ...grpc.CallOption) (*UpdateLocationResponse, error)
}

type deliveryServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDeliveryServiceClient(cc grpc.ClientConnInterface) DeliveryServiceClient {
	return &deliveryServiceClient{cc}
}

func (c *deliveryServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	return rpc.Invoke[GetProfileResponse](ctx, c.cc, DeliveryService_GetProfile_FullMethodName, in, opts...)
}

func (c *deliveryServiceClient) GetAssignedOrders(ctx context.Context, in *GetAssignedOrdersRequest, opts ...grpc.CallOption) (*GetAssignedOrdersResponse, error) {
	return rpc.Invoke[GetAssignedOrdersResponse](ctx, c.cc, DeliveryService_GetAssignedOrders_FullMethodName, in, opts...)
}

func (c *deliveryServiceClient) UpdateDeliveryStatus(ctx context.Context, in *UpdateDeliveryStatusRequest, opts ...grpc.CallOption) (*UpdateDeliveryStatusResponse, error) {
	return rpc.Invoke[UpdateDeliveryStatusResponse](ctx, c.cc, DeliveryService_UpdateDeliveryStatus_FullMethodName, in, opts...)
}

func (c *deliveryServiceClient) SaveMeasurements(ctx context.Context, in *SaveMeasurementsRequest, opts ...grpc.CallOption) (*SaveMeasurementsResponse, error) {
	return rpc.Invoke[SaveMeasurementsResponse](ctx, c.cc, DeliveryService_SaveMeasurements_FullMethodName, in, opts...)
}

func (c *deliveryServiceClient) UpdateLocation(ctx context.Context, in *UpdateLocationRequest, opts ...grpc.CallOption) (*UpdateLocationResponse, error) {
	return rpc.Invoke[UpdateLocationResponse](ctx, c.cc, DeliveryService_UpdateLocation_FullMethodName, in, opts...)
}
