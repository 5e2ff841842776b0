package grpc

// proto.go defines the gRPC server interface for pagos.servicing.v1.
// This file is a stand-in for buf-generated code; the messages travel
// over the JSON codec registered in json_codec.go. Once `buf generate`
// is wired up, replace this file with the generated package.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Mashi007/pagos-sub005/internal/application/dto"
)

// ServicingServiceServer is the server API for ServicingService.
type ServicingServiceServer interface {
	GenerateSchedule(context.Context, *dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	ApplyPayment(context.Context, *dto.ApplyPaymentRequest) (*dto.ApplyPaymentResponse, error)
	RecalculateMora(context.Context, *dto.RecalculateMoraRequest) (*dto.RecalculateMoraResponse, error)
	ProjectPayment(context.Context, *dto.ProjectPaymentRequest) (*dto.ProjectPaymentResponse, error)
	GetLoan(context.Context, *dto.GetLoanRequest) (*dto.LoanResponse, error)
	mustEmbedUnimplementedServicingServiceServer()
}

// UnimplementedServicingServiceServer provides forward-compatible default
// implementations.
type UnimplementedServicingServiceServer struct{}

func (UnimplementedServicingServiceServer) GenerateSchedule(context.Context, *dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GenerateSchedule not implemented")
}
func (UnimplementedServicingServiceServer) ApplyPayment(context.Context, *dto.ApplyPaymentRequest) (*dto.ApplyPaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ApplyPayment not implemented")
}
func (UnimplementedServicingServiceServer) RecalculateMora(context.Context, *dto.RecalculateMoraRequest) (*dto.RecalculateMoraResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecalculateMora not implemented")
}
func (UnimplementedServicingServiceServer) ProjectPayment(context.Context, *dto.ProjectPaymentRequest) (*dto.ProjectPaymentResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ProjectPayment not implemented")
}
func (UnimplementedServicingServiceServer) GetLoan(context.Context, *dto.GetLoanRequest) (*dto.LoanResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLoan not implemented")
}
func (UnimplementedServicingServiceServer) mustEmbedUnimplementedServicingServiceServer() {}

// RegisterServicingServiceServer registers the ServicingServiceServer
// with the gRPC server.
func RegisterServicingServiceServer(s *grpclib.Server, srv ServicingServiceServer) {
	s.RegisterService(&_ServicingService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _ServicingService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "pagos.servicing.v1.ServicingService",
	HandlerType: (*ServicingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "GenerateSchedule", Handler: _ServicingService_GenerateSchedule_Handler}, //nolint:revive // gRPC handler registration
		{MethodName: "ApplyPayment", Handler: _ServicingService_ApplyPayment_Handler},         //nolint:revive // gRPC handler registration
		{MethodName: "RecalculateMora", Handler: _ServicingService_RecalculateMora_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "ProjectPayment", Handler: _ServicingService_ProjectPayment_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "GetLoan", Handler: _ServicingService_GetLoan_Handler},                   //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _ServicingService_GenerateSchedule_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.GenerateScheduleRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ServicingServiceServer).GenerateSchedule(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/pagos.servicing.v1.ServicingService/GenerateSchedule",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ServicingServiceServer).GenerateSchedule(ctx, req.(*dto.GenerateScheduleRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ServicingService_ApplyPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.ApplyPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ServicingServiceServer).ApplyPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/pagos.servicing.v1.ServicingService/ApplyPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ServicingServiceServer).ApplyPayment(ctx, req.(*dto.ApplyPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ServicingService_RecalculateMora_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.RecalculateMoraRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ServicingServiceServer).RecalculateMora(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/pagos.servicing.v1.ServicingService/RecalculateMora",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ServicingServiceServer).RecalculateMora(ctx, req.(*dto.RecalculateMoraRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ServicingService_ProjectPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.ProjectPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ServicingServiceServer).ProjectPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/pagos.servicing.v1.ServicingService/ProjectPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ServicingServiceServer).ProjectPayment(ctx, req.(*dto.ProjectPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _ServicingService_GetLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(dto.GetLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ServicingServiceServer).GetLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/pagos.servicing.v1.ServicingService/GetLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ServicingServiceServer).GetLoan(ctx, req.(*dto.GetLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}
