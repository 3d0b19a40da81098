package grpc

import (
	"context"
	"errors"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/identity"
	"github.com/fjod/go_cart/storefront/internal/platform/logger"
	"github.com/fjod/go_cart/storefront/internal/platform/metrics"
	pb "github.com/fjod/go_cart/storefront/pkg/proto"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const maxQuantity = 99

type CartServer struct {
	pb.UnimplementedCartServiceServer
	carts *cart.Manager
	log   *zap.Logger
}

func NewCartServer(carts *cart.Manager, log *zap.Logger) *CartServer {
	return &CartServer{
		carts: carts,
		log:   logger.OrNop(log),
	}
}

// NewServer builds a grpc.Server with the cart service registered behind the
// metrics, logging and identity interceptors. m may be nil.
func NewServer(carts *cart.Manager, v *identity.Verifier, m *metrics.Manager, log *zap.Logger) *grpc.Server {
	log = logger.OrNop(log).Named("grpc")
	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			MetricsInterceptor(m),
			LoggingInterceptor(log),
			IdentityInterceptor(v, log),
		),
	)
	pb.RegisterCartServiceServer(server, NewCartServer(carts, log))
	return server
}

// serve runs op against the caller's session. A nil op only loads the cart.
// A failed op returns a status whose details carry the settled cart and the
// failure notices.
func (s *CartServer) serve(ctx context.Context, op func(*cart.Session) (domain.Snapshot, error)) (*pb.CartResponse, error) {
	mode, ok := ModeFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "cart mode could not be resolved")
	}

	rec := &cart.Recorder{}
	session, err := s.carts.Open(ctx, mode, cart.WithNotifier(rec))
	defer session.Close()
	if err != nil {
		return nil, s.failure(err, session.Snapshot(), rec)
	}

	snap := session.Snapshot()
	if op != nil {
		if snap, err = op(session); err != nil {
			s.log.Debug("cart operation rejected", zap.Stringer("mode", mode), zap.Error(err))
			return nil, s.failure(err, snap, rec)
		}
	}
	return newCartResponse(snap, rec.Notices()), nil
}

func (s *CartServer) failure(err error, snap domain.Snapshot, rec *cart.Recorder) error {
	st := status.Convert(toStatus(err))
	withDetails, detailErr := st.WithDetails(newCartResponse(snap, rec.Notices()))
	if detailErr != nil {
		s.log.Warn("failed to attach cart details to status", zap.Error(detailErr))
		return st.Err()
	}
	return withDetails.Err()
}

func newCartResponse(snap domain.Snapshot, notices []cart.Notice) *pb.CartResponse {
	return &pb.CartResponse{
		Cart:    convertSnapshot(snap),
		Notices: convertNotices(notices),
	}
}

func convertSnapshot(snap domain.Snapshot) *pb.Cart {
	mode := "anonymous"
	if !snap.Mode().IsAnonymous() {
		mode = "authenticated"
	}
	items := make([]*pb.LineItem, 0, snap.Len())
	for _, item := range snap.Items() {
		items = append(items, &pb.LineItem{
			Id:             item.ID,
			ProductId:      item.ProductID,
			Quantity:       int32(item.Quantity),
			Name:           item.Name,
			UnitPrice:      item.UnitPrice,
			ImageUrl:       item.ImageURL,
			StockAvailable: int32(item.StockAvailable),
		})
	}
	return &pb.Cart{
		Items:      items,
		TotalItems: int32(snap.TotalItems()),
		TotalPrice: snap.TotalPrice(),
		Mode:       mode,
	}
}

func convertNotices(notices []cart.Notice) []*pb.Notice {
	out := make([]*pb.Notice, 0, len(notices))
	for _, n := range notices {
		out = append(out, &pb.Notice{
			Title:       n.Title,
			Description: n.Description,
			Variant:     string(n.Variant),
		})
	}
	return out
}

func (s *CartServer) GetCart(ctx context.Context, _ *pb.GetCartRequest) (*pb.CartResponse, error) {
	return s.serve(ctx, nil)
}

func (s *CartServer) AddItem(ctx context.Context, req *pb.AddItemRequest) (*pb.CartResponse, error) {
	if req.GetProductId() == "" {
		return nil, status.Error(codes.InvalidArgument, "product_id is required")
	}
	quantity := int(req.GetQuantity())
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 || quantity > maxQuantity {
		return nil, status.Error(codes.InvalidArgument, "quantity must be between 1 and 99")
	}
	return s.serve(ctx, func(session *cart.Session) (domain.Snapshot, error) {
		return session.AddToCart(ctx, req.GetProductId(), quantity)
	})
}

func (s *CartServer) UpdateQuantity(ctx context.Context, req *pb.UpdateQuantityRequest) (*pb.CartResponse, error) {
	if req.GetItemId() == "" {
		return nil, status.Error(codes.InvalidArgument, "item_id is required")
	}
	if req.GetQuantity() > maxQuantity {
		return nil, status.Error(codes.InvalidArgument, "quantity must not exceed 99")
	}
	return s.serve(ctx, func(session *cart.Session) (domain.Snapshot, error) {
		return session.UpdateQuantity(ctx, req.GetItemId(), int(req.GetQuantity()))
	})
}

func (s *CartServer) RemoveItem(ctx context.Context, req *pb.RemoveItemRequest) (*pb.CartResponse, error) {
	if req.GetItemId() == "" {
		return nil, status.Error(codes.InvalidArgument, "item_id is required")
	}
	return s.serve(ctx, func(session *cart.Session) (domain.Snapshot, error) {
		return session.RemoveFromCart(ctx, req.GetItemId())
	})
}

func (s *CartServer) ClearCart(ctx context.Context, _ *pb.ClearCartRequest) (*pb.CartResponse, error) {
	return s.serve(ctx, func(session *cart.Session) (domain.Snapshot, error) {
		return session.ClearCart(ctx)
	})
}

func (s *CartServer) RefreshCart(ctx context.Context, _ *pb.RefreshCartRequest) (*pb.CartResponse, error) {
	return s.serve(ctx, func(session *cart.Session) (domain.Snapshot, error) {
		return session.RefreshCart(ctx)
	})
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, domain.ErrDuplicateItem):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, cart.ErrSessionClosed):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrRemoteUnavailable),
		errors.Is(err, domain.ErrStorageUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Errorf(codes.Internal, "cart operation failed: %v", err)
	}
}
