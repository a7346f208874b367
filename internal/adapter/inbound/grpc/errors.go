package grpc

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pkggrpc "github.com/0xsj/overwatch-pkg/grpc"

	domainerror "github.com/0xsj/overwatch-kernel/internal/domain/error"
)

// toGRPCError converts domain errors to gRPC status errors.
// Validation failures carry their violations as BadRequest details; every
// other error goes through the pkg/grpc Kind mapping.
func toGRPCError(err error) error {
	if err == nil {
		return nil
	}

	var verr *domainerror.ValidationError
	if errors.As(err, &verr) {
		return validationStatus(verr).Err()
	}

	return pkggrpc.ToStatus(err).Err()
}

func validationStatus(verr *domainerror.ValidationError) *status.Status {
	st := status.New(codes.InvalidArgument, verr.Error())

	br := &errdetails.BadRequest{}
	for _, v := range verr.Violations {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       v.Field,
			Description: v.String(),
		})
	}

	detailed, err := st.WithDetails(br)
	if err != nil {
		return st
	}
	return detailed
}
