package adminv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tailoringStorefront/api/rpc"
)

const ServiceName = "tailoring.admin.v1.AdminService"

const (
	AdminService_GetOrders_FullMethodName              = "/" + ServiceName + "/GetOrders"
	AdminService_UpdateOrderStatus_FullMethodName      = "/" + ServiceName + "/UpdateOrderStatus"
	AdminService_AssignDriver_FullMethodName           = "/" + ServiceName + "/AssignDriver"
	AdminService_RankDrivers_FullMethodName            = "/" + ServiceName + "/RankDrivers"
	AdminService_CreateDriver_FullMethodName           = "/" + ServiceName + "/CreateDriver"
	AdminService_GetDrivers_FullMethodName             = "/" + ServiceName + "/GetDrivers"
	AdminService_UpdateDriverStatus_FullMethodName     = "/" + ServiceName + "/UpdateDriverStatus"
	AdminService_GetStats_FullMethodName               = "/" + ServiceName + "/GetStats"
	AdminService_GetDeliveryLocations_FullMethodName   = "/" + ServiceName + "/GetDeliveryLocations"
	AdminService_WatchDeliveryLocations_FullMethodName = "/" + ServiceName + "/WatchDeliveryLocations"
)

// AdminServiceServer is the server API for AdminService.
type AdminServiceServer interface {
	GetOrders(context.Context, *GetOrdersRequest) (*GetOrdersResponse, error)
	UpdateOrderStatus(context.Context, *UpdateOrderStatusRequest) (*UpdateOrderStatusResponse, error)
	AssignDriver(context.Context, *AssignDriverRequest) (*AssignDriverResponse, error)
	RankDrivers(context.Context, *RankDriversRequest) (*RankDriversResponse, error)
	CreateDriver(context.Context, *CreateDriverRequest) (*CreateDriverResponse, error)
	GetDrivers(context.Context, *GetDriversRequest) (*GetDriversResponse, error)
	UpdateDriverStatus(context.Context, *UpdateDriverStatusRequest) (*UpdateDriverStatusResponse, error)
	GetStats(context.Context, *GetStatsRequest) (*GetStatsResponse, error)
	GetDeliveryLocations(context.Context, *GetDeliveryLocationsRequest) (*GetDeliveryLocationsResponse, error)
	WatchDeliveryLocations(*WatchDeliveryLocationsRequest, grpc.ServerStreamingServer[GetDeliveryLocationsResponse]) error
	mustEmbedUnimplementedAdminServiceServer()
}

// UnimplementedAdminServiceServer must be embedded to have forward compatible implementations.
type UnimplementedAdminServiceServer struct{}

func (UnimplementedAdminServiceServer) GetOrders(context.Context, *GetOrdersRequest) (*GetOrdersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOrders not implemented")
}
func (UnimplementedAdminServiceServer) UpdateOrderStatus(context.Context, *UpdateOrderStatusRequest) (*UpdateOrderStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateOrderStatus not implemented")
}
func (UnimplementedAdminServiceServer) AssignDriver(context.Context, *AssignDriverRequest) (*AssignDriverResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AssignDriver not implemented")
}
func (UnimplementedAdminServiceServer) RankDrivers(context.Context, *RankDriversRequest) (*RankDriversResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RankDrivers not implemented")
}
func (UnimplementedAdminServiceServer) CreateDriver(context.Context, *CreateDriverRequest) (*CreateDriverResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateDriver not implemented")
}
func (UnimplementedAdminServiceServer) GetDrivers(context.Context, *GetDriversRequest) (*GetDriversResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDrivers not implemented")
}
func (UnimplementedAdminServiceServer) UpdateDriverStatus(context.Context, *UpdateDriverStatusRequest) (*UpdateDriverStatusResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateDriverStatus not implemented")
}
func (UnimplementedAdminServiceServer) GetStats(context.Context, *GetStatsRequest) (*GetStatsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStats not implemented")
}
func (UnimplementedAdminServiceServer) GetDeliveryLocations(context.Context, *GetDeliveryLocationsRequest) (*GetDeliveryLocationsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDeliveryLocations not implemented")
}
func (UnimplementedAdminServiceServer) WatchDeliveryLocations(*WatchDeliveryLocationsRequest, grpc.ServerStreamingServer[GetDeliveryLocationsResponse]) error {
	return status.Error(codes.Unimplemented, "method WatchDeliveryLocations not implemented")
}
func (UnimplementedAdminServiceServer) mustEmbedUnimplementedAdminServiceServer() {}

// AdminService_ServiceDesc is the grpc.ServiceDesc for AdminService.
var AdminService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AdminServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.UnaryMethod(ServiceName, "GetOrders", AdminServiceServer.GetOrders),
		rpc.UnaryMethod(ServiceName, "UpdateOrderStatus", AdminServiceServer.UpdateOrderStatus),
		rpc.UnaryMethod(ServiceName, "AssignDriver", AdminServiceServer.AssignDriver),
		rpc.UnaryMethod(ServiceName, "RankDrivers", AdminServiceServer.RankDrivers),
		rpc.UnaryMethod(ServiceName, "CreateDriver", AdminServiceServer.CreateDriver),
		rpc.UnaryMethod(ServiceName, "GetDrivers", AdminServiceServer.GetDrivers),
		rpc.UnaryMethod(ServiceName, "UpdateDriverStatus", AdminServiceServer.UpdateDriverStatus),
		rpc.UnaryMethod(ServiceName, "GetStats", AdminServiceServer.GetStats),
		rpc.UnaryMethod(ServiceName, "GetDeliveryLocations", AdminServiceServer.GetDeliveryLocations),
	},
	Streams: []grpc.StreamDesc{
		rpc.ServerStreamMethod("WatchDeliveryLocations", AdminServiceServer.WatchDeliveryLocations),
	},
	Metadata: "tailoring/admin/v1/admin.proto",
}

func RegisterAdminServiceServer(s grpc.ServiceRegistrar, srv AdminServiceServer) {
	s.RegisterService(&AdminService_ServiceDesc, srv)
}

// AdminServiceClient is the client API for AdminService.
type AdminServiceClient interface {
	GetOrders(ctx context.Context, in *GetOrdersRequest, opts ...grpc.CallOption) (*GetOrdersResponse, error)
	UpdateOrderStatus(ctx context.Context, in *UpdateOrderStatusRequest, opts ...grpc.CallOption) (*UpdateOrderStatusResponse, error)
	AssignDriver(ctx context.Context, in *AssignDriverRequest, opts ...grpc.CallOption) (*AssignDriverResponse, error)
	RankDrivers(ctx context.Context, in *RankDriversRequest, opts ...grpc.CallOption) (*RankDriversResponse, error)
	CreateDriver(ctx context.Context, in *CreateDriverRequest, opts ...grpc.CallOption) (*CreateDriverResponse, error)
	GetDrivers(ctx context.Context, in *GetDriversRequest, opts ...grpc.CallOption) (*GetDriversResponse, error)
	UpdateDriverStatus(ctx context.Context, in *UpdateDriverStatusRequest, opts ...grpc.CallOption) (*UpdateDriverStatusResponse, error)
	GetStats(ctx context.Context, in *GetStatsRequest, opts ...grpc.CallOption) (*GetStatsResponse, error)
	GetDeliveryLocations(ctx context.Context, in *GetDeliveryLocationsRequest, opts ...grpc.CallOption) (*GetDeliveryLocationsResponse, error)
	WatchDeliveryLocations(ctx context.Context, in *WatchDeliveryLocationsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[GetDeliveryLocationsResponse], error)
}

type adminServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewAdminServiceClient(cc grpc.ClientConnInterface) AdminServiceClient {
	return &adminServiceClient{cc}
}

func (c *adminServiceClient) GetOrders(ctx context.Context, in *GetOrdersRequest, opts ...grpc.CallOption) (*GetOrdersResponse, error) {
	return rpc.Invoke[GetOrdersResponse](ctx, c.cc, AdminService_GetOrders_FullMethodName, in, opts...)
}

func (c *adminServiceClient) UpdateOrderStatus(ctx context.Context, in *UpdateOrderStatusRequest, opts ...grpc.CallOption) (*UpdateOrderStatusResponse, error) {
	return rpc.Invoke[UpdateOrderStatusResponse](ctx, c.cc, AdminService_UpdateOrderStatus_FullMethodName, in, opts...)
}

func (c *adminServiceClient) AssignDriver(ctx context.Context, in *AssignDriverRequest, opts ...grpc.CallOption) (*AssignDriverResponse, error) {
	return rpc.Invoke[AssignDriverResponse](ctx, c.cc, AdminService_AssignDriver_FullMethodName, in, opts...)
}

func (c *adminServiceClient) RankDrivers(ctx context.Context, in *RankDriversRequest, opts ...grpc.CallOption) (*RankDriversResponse, error) {
	return rpc.Invoke[RankDriversResponse](ctx, c.cc, AdminService_RankDrivers_FullMethodName, in, opts...)
}

func (c *adminServiceClient) CreateDriver(ctx context.Context, in *CreateDriverRequest, opts ...grpc.CallOption) (*CreateDriverResponse, error) {
	return rpc.Invoke[CreateDriverResponse](ctx, c.cc, AdminService_CreateDriver_FullMethodName, in, opts...)
}

func (c *adminServiceClient) GetDrivers(ctx context.Context, in *GetDriversRequest, opts ...grpc.CallOption) (*GetDriversResponse, error) {
	return rpc.Invoke[GetDriversResponse](ctx, c.cc, AdminService_GetDrivers_FullMethodName, in, opts...)
}

func (c *adminServiceClient) UpdateDriverStatus(ctx context.Context, in *UpdateDriverStatusRequest, opts ...grpc.CallOption) (*UpdateDriverStatusResponse, error) {
	return rpc.Invoke[UpdateDriverStatusResponse](ctx, c.cc, AdminService_UpdateDriverStatus_FullMethodName, in, opts...)
}

func (c *adminServiceClient) GetStats(ctx context.Context, in *GetStatsRequest, opts ...grpc.CallOption) (*GetStatsResponse, error) {
	return rpc.Invoke[GetStatsResponse](ctx, c.cc, AdminService_GetStats_FullMethodName, in, opts...)
}

func (c *adminServiceClient) GetDeliveryLocations(ctx context.Context, in *GetDeliveryLocationsRequest, opts ...grpc.CallOption) (*GetDeliveryLocationsResponse, error) {
	return rpc.Invoke[GetDeliveryLocationsResponse](ctx, c.cc, AdminService_GetDeliveryLocations_FullMethodName, in, opts...)
}

func (c *adminServiceClient) WatchDeliveryLocations(ctx context.Context, in *WatchDeliveryLocationsRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[GetDeliveryLocationsResponse], error) {
	return rpc.OpenServerStream[WatchDeliveryLocationsRequest, GetDeliveryLocationsResponse](ctx, c.cc, &AdminService_ServiceDesc.Streams[0], AdminService_WatchDeliveryLocations_FullMethodName, in, opts...)
}
