package importbill

import (
	"context"
	"errors"
	"time"

	"github.com/dnminh/fashionshop-backend/internal/types/catalog"
	"github.com/dnminh/fashionshop-backend/internal/types/importbill"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrBillNotFound    = errors.New("import bill not found")
	ErrDetailNotFound  = errors.New("import bill detail not found")
	ErrVariantNotFound = errors.New("product variant not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrInvalidAmount   = errors.New("total amount cannot be negative")
)

type BillRepository interface {
	CreateImportBill(ctx context.Context, b *importbill.Bill) error
	FindImportBillByID(ctx context.Context, id string) (*importbill.Bill, error)
	ListImportBills(ctx context.Context) ([]importbill.Bill, error)
	SearchImportBills(ctx context.Context, f importbill.Filter) ([]importbill.Bill, error)
	UpdateImportBill(ctx context.Context, b *importbill.Bill) error
	DeleteImportBill(ctx context.Context, id string) error

	CreateImportBillDetail(ctx context.Context, d *importbill.Detail) error
	FindImportBillDetailByID(ctx context.Context, id string) (*importbill.Detail, error)
	ListImportBillDetailsByBill(ctx context.Context, billID string) ([]importbill.Detail, error)
	UpdateImportBillDetail(ctx context.Context, d *importbill.Detail) error
	DeleteImportBillDetail(ctx context.Context, id string) error
	// DeleteImportBillDetailsByBill cascades when a bill is removed.
	DeleteImportBillDetailsByBill(ctx context.Context, billID string) error
}

type VariantRepository interface {
	FindVariantByID(ctx context.Context, id string) (*catalog.Variant, error)
}

type Service struct {
	bills    BillRepository
	variants VariantRepository
}

func NewService(bills BillRepository, variants VariantRepository) *Service {
	return &Service{bills: bills, variants: variants}
}

type BillInput struct {
	CreateDate  time.Time `json:"create_date"`
	TotalAmount float64   `json:"total_amount"`
	ImageBill   string    `json:"image_bill"`
}

func (s *Service) CreateBill(ctx context.Context, in BillInput) (*importbill.Bill, error) {
	if in.TotalAmount < 0 {
		return nil, ErrInvalidAmount
	}
	b := &importbill.Bill{
		CreateDate:  in.CreateDate,
		TotalAmount: in.TotalAmount,
		ImageBill:   in.ImageBill,
	}
	if b.CreateDate.IsZero() {
		b.CreateDate = time.Now().UTC()
	}
	if err := s.bills.CreateImportBill(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) ListBills(ctx context.Context) ([]importbill.Bill, error) {
	return s.bills.ListImportBills(ctx)
}

func (s *Service) SearchBills(ctx context.Context, f importbill.Filter) ([]importbill.Bill, error) {
	return s.bills.SearchImportBills(ctx, f)
}

func (s *Service) GetBill(ctx context.Context, id string) (*importbill.Bill, error) {
	b, err := s.bills.FindImportBillByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) UpdateBill(ctx context.Context, id string, in BillInput) (*importbill.Bill, error) {
	b, err := s.GetBill(ctx, id)
	if err != nil {
		return nil, err
	}
	if !in.CreateDate.IsZero() {
		b.CreateDate = in.CreateDate
	}
	if in.TotalAmount < 0 {
		return nil, ErrInvalidAmount
	}
	if in.TotalAmount > 0 {
		b.TotalAmount = in.TotalAmount
	}
	if in.ImageBill != "" {
		b.ImageBill = in.ImageBill
	}
	if err := s.bills.UpdateImportBill(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) DeleteBill(ctx context.Context, id string) error {
	if _, err := s.GetBill(ctx, id); err != nil {
		return err
	}
	if err := s.bills.DeleteImportBill(ctx, id); err != nil {
		return err
	}
	return s.bills.DeleteImportBillDetailsByBill(ctx, id)
}

type DetailInput struct {
	BillID      string  `json:"bill_id"`
	VariantID   string  `json:"variant_id"`
	Quantity    int     `json:"quantity"`
	ImportPrice float64 `json:"import_price"`
}

func (s *Service) CreateDetail(ctx context.Context, in DetailInput) (*importbill.Detail, error) {
	b, err := s.GetBill(ctx, in.BillID)
	if err != nil {
		return nil, err
	}
	v, err := s.variants.FindVariantByID(ctx, in.VariantID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}
	if in.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	d := &importbill.Detail{
		BillID:      b.ID,
		VariantID:   v.ID,
		Quantity:    in.Quantity,
		ImportPrice: in.ImportPrice,
	}
	if err := s.bills.CreateImportBillDetail(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) ListDetailsByBill(ctx context.Context, billID string) ([]importbill.Detail, error) {
	if _, err := s.GetBill(ctx, billID); err != nil {
		return nil, err
	}
	return s.bills.ListImportBillDetailsByBill(ctx, billID)
}

func (s *Service) GetDetail(ctx context.Context, id string) (*importbill.Detail, error) {
	d, err := s.bills.FindImportBillDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrDetailNotFound
		}
		return nil, err
	}
	return d, nil
}

type DetailUpdateInput struct {
	VariantID   *string  `json:"variant_id"`
	Quantity    *int     `json:"quantity"`
	ImportPrice *float64 `json:"import_price"`
}

func (s *Service) UpdateDetail(ctx context.Context, id string, in DetailUpdateInput) (*importbill.Detail, error) {
	d, err := s.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.VariantID != nil {
		v, err := s.variants.FindVariantByID(ctx, *in.VariantID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrVariantNotFound
			}
			return nil, err
		}
		d.VariantID = v.ID
	}
	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		d.Quantity = *in.Quantity
	}
	if in.ImportPrice != nil {
		d.ImportPrice = *in.ImportPrice
	}
	if err := s.bills.UpdateImportBillDetail(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) DeleteDetail(ctx context.Context, id string) error {
	if _, err := s.GetDetail(ctx, id); err != nil {
		return err
	}
	return s.bills.DeleteImportBillDetail(ctx, id)
}
