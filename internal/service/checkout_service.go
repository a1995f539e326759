package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/logger"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/queue"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutService turns the active cart into an order. Everything up to
// and including the cart clearing happens in one database transaction;
// the confirmation notification is enqueued only after commit.
type CheckoutService struct {
	cartRepo      repository.CartRepository
	orderRepo     repository.OrderRepository
	paymentRepo   repository.PaymentRepository
	variantRepo   repository.VariantRepository
	movementRepo  repository.StockMovementRepository
	promotionRepo repository.PromotionRepository
	addressRepo   repository.AddressRepository
	queueClient   *queue.Client
	expireMinutes int
}

// NewCheckoutService creates the checkout service.
func NewCheckoutService(cartRepo repository.CartRepository, orderRepo repository.OrderRepository, paymentRepo repository.PaymentRepository, variantRepo repository.VariantRepository, movementRepo repository.StockMovementRepository, promotionRepo repository.PromotionRepository, addressRepo repository.AddressRepository, queueClient *queue.Client, expireMinutes int) *CheckoutService {
	return &CheckoutService{
		cartRepo:      cartRepo,
		orderRepo:     orderRepo,
		paymentRepo:   paymentRepo,
		variantRepo:   variantRepo,
		movementRepo:  movementRepo,
		promotionRepo: promotionRepo,
		addressRepo:   addressRepo,
		queueClient:   queueClient,
		expireMinutes: expireMinutes,
	}
}

// CheckoutInput is the checkout request.
type CheckoutInput struct {
	UserID         uint
	AddressID      uint
	ShippingMethod string
	PromotionCode  string
	ClientIP       string
}

// CheckoutResult is the checkout response.
type CheckoutResult struct {
	Order   *models.Order   `json:"order"`
	Payment *models.Payment `json:"payment"`
}

// PlaceOrder converts the user's active cart into a pending order with
// its payment record, order lines, stock decrements and ledger rows,
// then clears the cart. Any failure rolls the whole thing back.
func (s *CheckoutService) PlaceOrder(input CheckoutInput) (*CheckoutResult, error) {
	if input.UserID == 0 {
		return nil, ErrUserNotFound
	}

	shippingMethod := strings.TrimSpace(input.ShippingMethod)
	if shippingMethod == "" {
		shippingMethod = constants.ShippingMethodStandard
	}
	if shippingMethod != constants.ShippingMethodStandard && shippingMethod != constants.ShippingMethodExpress {
		return nil, ErrShipmentInvalid
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(s.resolveExpireMinutes()) * time.Minute)

	order := &models.Order{
		OrderNo:        generateOrderNo(),
		UserID:         input.UserID,
		Status:         constants.OrderStatusPending,
		Currency:       constants.SiteCurrencyDefault,
		ShippingMethod: shippingMethod,
		ClientIP:       strings.TrimSpace(input.ClientIP),
		ExpiresAt:      &expiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	var payment *models.Payment

	// The cart read happens inside the transaction so two checkouts on
	// the same cart cannot both commit from one snapshot; the loser is
	// caught by the guarded cart-row delete at the end.
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)
		paymentRepo := s.paymentRepo.WithTx(tx)
		variantRepo := s.variantRepo.WithTx(tx)
		movementRepo := s.movementRepo.WithTx(tx)

		cart, err := cartRepo.GetActiveByUser(input.UserID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrCartNotFound
		}
		if len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		addressSnapshot, err := s.resolveAddressSnapshot(tx, input.UserID, input.AddressID)
		if err != nil {
			return err
		}
		order.ShippingAddress = addressSnapshot

		items, subtotal, err := s.buildOrderItems(variantRepo, cart.Items)
		if err != nil {
			return err
		}

		discount := decimal.Zero
		var promotionID *uint
		if code := strings.TrimSpace(input.PromotionCode); code != "" {
			promotion, promoDiscount, err := s.applyPromotion(tx, code, input.UserID, subtotal)
			if err != nil {
				return err
			}
			discount = promoDiscount
			promotionID = &promotion.ID
		}

		total := subtotal.Sub(discount)
		if total.LessThan(decimal.Zero) {
			total = decimal.Zero
		}

		order.OriginalAmount = models.NewMoneyFromDecimal(subtotal)
		order.DiscountAmount = models.NewMoneyFromDecimal(discount)
		order.TotalAmount = models.NewMoneyFromDecimal(total)
		order.PromotionID = promotionID

		if err := orderRepo.Create(order, items); err != nil {
			return err
		}

		payment = &models.Payment{
			OrderID:   order.ID,
			Provider:  constants.PaymentProviderStripe,
			Amount:    order.TotalAmount,
			Currency:  order.Currency,
			Status:    constants.PaymentStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}

		if promotionID != nil {
			promotionRepo := s.promotionRepo.WithTx(tx)
			usage := &models.PromotionUsage{
				PromotionID: *promotionID,
				UserID:      input.UserID,
				OrderID:     order.ID,
				Discount:    models.NewMoneyFromDecimal(discount),
				CreatedAt:   now,
			}
			if err := promotionRepo.CreateUsage(usage); err != nil {
				return err
			}
		}

		for i := range items {
			item := &items[i]
			affected, err := variantRepo.DecrementStock(item.VariantID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				variant, lookupErr := variantRepo.GetByID(item.VariantID)
				available := 0
				if lookupErr == nil && variant != nil {
					available = variant.StockOnHand
				}
				return &InsufficientStockError{
					VariantID: item.VariantID,
					SKU:       item.SKU,
					Requested: item.Quantity,
					Available: available,
				}
			}

			variant, err := variantRepo.GetByID(item.VariantID)
			if err != nil {
				return err
			}
			if variant == nil {
				return ErrVariantNotFound
			}
			movement := &models.StockMovement{
				VariantID:  item.VariantID,
				Type:       constants.StockMovementSale,
				Quantity:   -item.Quantity,
				StockAfter: variant.StockOnHand,
				OrderID:    &order.ID,
				Actor:      constants.StockActorCheckout,
				ActorID:    input.UserID,
				CreatedAt:  now,
			}
			if err := movementRepo.Create(movement); err != nil {
				return err
			}
		}

		deleted, err := cartRepo.DeleteCart(cart.ID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			// Another transaction consumed this cart already.
			return ErrCartNotFound
		}
		return nil
	})
	if err != nil {
		var stockErr *InsufficientStockError
		if errors.As(err, &stockErr) {
			return nil, stockErr
		}
		if errors.Is(err, ErrCartNotFound) ||
			errors.Is(err, ErrCartEmpty) ||
			errors.Is(err, ErrAddressNotFound) ||
			errors.Is(err, ErrVariantNotFound) ||
			errors.Is(err, ErrVariantUnavailable) ||
			errors.Is(err, ErrProductUnavailable) ||
			errors.Is(err, ErrCartItemInvalid) ||
			errors.Is(err, ErrPromotionNotFound) ||
			errors.Is(err, ErrPromotionNotActive) ||
			errors.Is(err, ErrPromotionMinAmount) ||
			errors.Is(err, ErrPromotionExhausted) {
			return nil, err
		}
		logger.Errorw("checkout_transaction_failed",
			"user_id", input.UserID,
			"error", err,
		)
		return nil, ErrOrderCreateFailed
	}

	s.afterCommit(order)

	full, err := s.orderRepo.GetByID(order.ID)
	if err == nil && full != nil {
		return &CheckoutResult{Order: full, Payment: payment}, nil
	}
	return &CheckoutResult{Order: order, Payment: payment}, nil
}

// buildOrderItems snapshots the cart lines into order lines and sums
// the subtotal from current variant prices.
func (s *CheckoutService) buildOrderItems(variantRepo repository.VariantRepository, cartItems []models.CartItem) ([]models.OrderItem, decimal.Decimal, error) {
	items := make([]models.OrderItem, 0, len(cartItems))
	subtotal := decimal.Zero
	for _, line := range cartItems {
		if line.Quantity <= 0 {
			return nil, decimal.Zero, ErrCartItemInvalid
		}
		variant, err := variantRepo.GetByID(line.VariantID)
		if err != nil {
			return nil, decimal.Zero, err
		}
		if variant == nil {
			return nil, decimal.Zero, ErrVariantNotFound
		}
		if !variant.IsActive {
			return nil, decimal.Zero, ErrVariantUnavailable
		}

		productName := ""
		if line.Variant != nil && line.Variant.Product != nil {
			if !line.Variant.Product.IsActive {
				return nil, decimal.Zero, ErrProductUnavailable
			}
			productName = line.Variant.Product.Name
		}

		lineTotal := variant.Price.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity)))
		items = append(items, models.OrderItem{
			ProductID:      variant.ProductID,
			VariantID:      variant.ID,
			ProductName:    productName,
			SKU:            variant.SKU,
			SpecValuesJSON: variant.SpecValuesJSON,
			UnitPrice:      variant.Price,
			Quantity:       line.Quantity,
			TotalPrice:     models.NewMoneyFromDecimal(lineTotal),
		})
		subtotal = subtotal.Add(lineTotal)
	}
	return items, subtotal, nil
}

// applyPromotion validates the code and consumes one use under the
// max_uses guard, all inside the checkout transaction.
func (s *CheckoutService) applyPromotion(tx *gorm.DB, code string, userID uint, subtotal decimal.Decimal) (*models.Promotion, decimal.Decimal, error) {
	promotionRepo := s.promotionRepo.WithTx(tx)
	promotion, err := promotionRepo.GetByCode(code)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if promotion == nil {
		return nil, decimal.Zero, ErrPromotionNotFound
	}

	now := time.Now()
	if !promotion.IsActive {
		return nil, decimal.Zero, ErrPromotionNotActive
	}
	if promotion.StartsAt != nil && now.Before(*promotion.StartsAt) {
		return nil, decimal.Zero, ErrPromotionNotActive
	}
	if promotion.EndsAt != nil && now.After(*promotion.EndsAt) {
		return nil, decimal.Zero, ErrPromotionNotActive
	}
	if promotion.MinAmount.Decimal.GreaterThan(decimal.Zero) && subtotal.LessThan(promotion.MinAmount.Decimal) {
		return nil, decimal.Zero, ErrPromotionMinAmount
	}

	used, err := promotionRepo.CountUsageByUser(promotion.ID, userID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if used > 0 {
		return nil, decimal.Zero, ErrPromotionExhausted
	}

	affected, err := promotionRepo.ConsumeUse(promotion.ID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if affected == 0 {
		return nil, decimal.Zero, ErrPromotionExhausted
	}

	return promotion, promotionDiscount(promotion, subtotal), nil
}

// promotionDiscount computes the discount a promotion yields on a
// subtotal, clamped to the subtotal.
func promotionDiscount(promotion *models.Promotion, subtotal decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch promotion.Type {
	case constants.PromotionTypeFixed:
		discount = promotion.Value.Decimal
	case constants.PromotionTypePercent:
		discount = subtotal.Mul(promotion.Value.Decimal).Div(decimal.NewFromInt(100))
	case constants.PromotionTypeSpecialPrice:
		discount = subtotal.Sub(promotion.Value.Decimal)
	default:
		return decimal.Zero
	}
	if discount.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount.Round(2)
}

// afterCommit runs the post-commit side effects. Failures are logged
// and never undo the committed order.
func (s *CheckoutService) afterCommit(order *models.Order) {
	if s.queueClient == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderConfirmation(queue.OrderConfirmationPayload{
		OrderID: order.ID,
		OrderNo: order.OrderNo,
	}); err != nil {
		logger.Errorw("checkout_enqueue_confirmation_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}
	if err := s.queueClient.EnqueueOrderTimeoutCancel(queue.OrderTimeoutCancelPayload{
		OrderID: order.ID,
	}, time.Duration(s.resolveExpireMinutes())*time.Minute); err != nil {
		logger.Errorw("checkout_enqueue_timeout_cancel_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
	}
}

func (s *CheckoutService) resolveAddressSnapshot(tx *gorm.DB, userID, addressID uint) (models.JSON, error) {
	if addressID == 0 {
		return nil, nil
	}
	if s.addressRepo == nil {
		return nil, ErrAddressNotFound
	}
	address, err := s.addressRepo.WithTx(tx).GetByIDAndUser(addressID, userID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	return models.JSON{
		"recipient": address.Recipient,
		"phone":     address.Phone,
		"line1":     address.Line1,
		"line2":     address.Line2,
		"suburb":    address.Suburb,
		"state":     address.State,
		"postcode":  address.Postcode,
		"country":   address.Country,
	}, nil
}

func (s *CheckoutService) resolveExpireMinutes() int {
	if s.expireMinutes > 0 {
		return s.expireMinutes
	}
	return 15
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("JS%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
