package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/domain"
	"github.com/jhoicas/inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/inventario-ventas/internal/domain/repository"
)

// AdjustmentInput corrección absoluta sobre una posición ya resuelta.
type AdjustmentInput struct {
	Kind             entity.AdjustmentKind
	ExpectedPrevious *int64
	NewQuantity      int64
	Reason           string
	UserID           int64
}

// ApplyAdjustmentInTx bloquea la posición, sobrescribe la cantidad y agrega el AdjustmentRecord
// con la cantidad anterior real. Si ExpectedPrevious no coincide retorna ErrStaleAdjustment.
func (l *Ledger) ApplyAdjustmentInTx(ctx context.Context, uow repository.UnitOfWork, positionID int64, in AdjustmentInput) (*entity.AdjustmentRecord, error) {
	if in.NewQuantity < 0 {
		return nil, domain.Invalid("cantidad_nueva", "no puede ser negativa")
	}
	pos, err := uow.StockPositions().GetByIDForUpdate(ctx, positionID)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, domain.ErrPositionNotFound
	}
	if in.ExpectedPrevious != nil && *in.ExpectedPrevious != pos.Quantity {
		return nil, domain.ErrStaleAdjustment
	}

	now := l.now()
	rec := &entity.AdjustmentRecord{
		StockPositionID:  pos.ID,
		Kind:             in.Kind,
		PreviousQuantity: pos.Quantity,
		NewQuantity:      in.NewQuantity,
		Reason:           in.Reason,
		CreatedBy:        userRef(in.UserID),
		CreatedAt:        now,
		ProductID:        pos.ProductID,
		ProductName:      pos.ProductName,
	}
	if err := uow.Adjustments().Create(ctx, rec); err != nil {
		return nil, err
	}
	if err := uow.StockPositions().UpdateQuantity(ctx, pos.ID, in.NewQuantity); err != nil {
		return nil, err
	}
	return rec, nil
}

// AdjustmentUseCase registra y consulta ajustes manuales de inventario.
type AdjustmentUseCase struct {
	ledger *Ledger
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(ledger *Ledger) *AdjustmentUseCase {
	return &AdjustmentUseCase{ledger: ledger}
}

// Create aplica el ajuste en una transacción: registro y nueva cantidad, o nada.
func (uc *AdjustmentUseCase) Create(ctx context.Context, userID int64, in dto.AdjustmentRequest) (*dto.AdjustmentResponse, error) {
	kind, err := entity.ParseAdjustmentKind(in.Kind)
	if err != nil {
		return nil, err
	}
	if in.StockPositionID <= 0 {
		return nil, domain.Invalid("producto_inventario_id", "requerido")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, domain.Invalid("motivo", "requerido")
	}

	var rec *entity.AdjustmentRecord
	err = uc.ledger.txRunner.Run(ctx, func(ctx context.Context, uow repository.UnitOfWork) error {
		var err error
		rec, err = uc.ledger.ApplyAdjustmentInTx(ctx, uow, in.StockPositionID, AdjustmentInput{
			Kind:             kind,
			ExpectedPrevious: in.PreviousQuantity,
			NewQuantity:      in.NewQuantity,
			Reason:           reason,
			UserID:           userID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.ledger.AfterCommit(ctx, "ADJUSTMENT_SET")
	out := toAdjustmentResponse(rec)
	return &out, nil
}

// List todos los ajustes, del más reciente al más antiguo.
func (uc *AdjustmentUseCase) List(ctx context.Context) ([]dto.AdjustmentResponse, error) {
	return uc.list(ctx, nil)
}

// ListByProduct ajustes de un producto en cualquier almacén.
func (uc *AdjustmentUseCase) ListByProduct(ctx context.Context, productID int64) ([]dto.AdjustmentResponse, error) {
	return uc.list(ctx, &productID)
}

func (uc *AdjustmentUseCase) list(ctx context.Context, productID *int64) ([]dto.AdjustmentResponse, error) {
	list, err := uc.ledger.reader.Adjustments().List(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAdjustmentResponse(a))
	}
	return out, nil
}
