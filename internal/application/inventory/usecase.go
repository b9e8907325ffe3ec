package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/astrobsm/ivanstamas-api/internal/application/dto"
	"github.com/astrobsm/ivanstamas-api/internal/domain"
	"github.com/astrobsm/ivanstamas-api/internal/domain/entity"
	"github.com/astrobsm/ivanstamas-api/internal/domain/inventory"
	"github.com/astrobsm/ivanstamas-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ItemUseCase casos de uso de ítems de inventario: alta, consulta, ajuste de stock y reportes.
type ItemUseCase struct {
	itemRepo      repository.InventoryItemRepository
	movRepo       repository.InventoryMovementRepository
	warehouseRepo repository.WarehouseRepository
	tx            TxRunner
	thresholds    inventory.Thresholds
	notifier      StockNotifier
	exporter      ReportExporter
	log           zerolog.Logger
}

// ItemDeps dependencias de ItemUseCase.
type ItemDeps struct {
	ItemRepo      repository.InventoryItemRepository
	MovementRepo  repository.InventoryMovementRepository
	WarehouseRepo repository.WarehouseRepository
	Tx            TxRunner
	Thresholds    inventory.Thresholds
	Notifier      StockNotifier // opcional
	Exporter      ReportExporter
	Log           zerolog.Logger
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(d ItemDeps) *ItemUseCase {
	return &ItemUseCase{
		itemRepo:      d.ItemRepo,
		movRepo:       d.MovementRepo,
		warehouseRepo: d.WarehouseRepo,
		tx:            d.Tx,
		thresholds:    d.Thresholds,
		notifier:      d.Notifier,
		exporter:      d.Exporter,
		log:           d.Log,
	}
}

// Create da de alta un ítem. SKU único por bodega (ErrDuplicate).
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateInventoryItemRequest) (*dto.InventoryItemResponse, error) {
	if err := inventory.ValidateLevels(in.Quantity, in.MinStock, in.MaxStock, in.UnitPrice); err != nil {
		return nil, err
	}
	if in.WarehouseID != "" {
		w, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if w == nil {
			return nil, fmt.Errorf("%w: la bodega %s no existe", domain.ErrInvalidInput, in.WarehouseID)
		}
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:          uuid.New().String(),
		SKU:         strings.ToUpper(strings.TrimSpace(in.SKU)),
		Name:        strings.TrimSpace(in.Name),
		WarehouseID: in.WarehouseID,
		UnitMeasure: in.UnitMeasure,
		Quantity:    in.Quantity,
		MinStock:    in.MinStock,
		MaxStock:    in.MaxStock,
		UnitPrice:   in.UnitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", item.ID).Str("sku", item.SKU).Int64("quantity", item.Quantity).Msg("ítem de inventario creado")
	out := uc.toResponse(item)
	return &out, nil
}

// GetByID obtiene un ítem con estado y valor derivados.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.InventoryItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	out := uc.toResponse(item)
	return &out, nil
}

// List lista ítems. El filtro por estado se aplica tras derivar, por eso pagina en memoria cuando se usa.
func (uc *ItemUseCase) List(ctx context.Context, in dto.InventoryListRequest) (*dto.InventoryListResponse, error) {
	in.DefaultPage()
	filter := entity.InventoryFilter{
		WarehouseID: in.WarehouseID,
		Search:      strings.TrimSpace(in.Search),
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	var want inventory.StockStatus
	if in.Status != "" {
		s, err := inventory.ParseStockStatus(in.Status)
		if err != nil {
			return nil, err
		}
		want = s
		filter.Limit, filter.Offset = 0, 0
	}
	list, err := uc.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		r := uc.toResponse(it)
		if want != "" && r.Status != string(want) {
			continue
		}
		items = append(items, r)
	}
	page := dto.PageResponse{Limit: in.Limit, Offset: in.Offset}
	if want != "" {
		page.Total = int64(len(items))
		items = paginate(items, in.Offset, in.Limit)
	}
	return &dto.InventoryListResponse{Items: items, Page: page}, nil
}

// Summary conteo por estado y valor total de todo el inventario.
func (uc *ItemUseCase) Summary(ctx context.Context, warehouseID string) (*dto.InventorySummaryResponse, error) {
	list, err := uc.itemRepo.List(ctx, entity.InventoryFilter{WarehouseID: warehouseID})
	if err != nil {
		return nil, err
	}
	out := &dto.InventorySummaryResponse{TotalItems: len(list)}
	total := decimal.Zero
	for _, it := range list {
		switch inventory.DeriveStatus(it.Quantity, it.MinStock, it.MaxStock, uc.thresholds) {
		case inventory.StatusCritical:
			out.Critical++
		case inventory.StatusLowStock:
			out.LowStock++
		default:
			out.InStock++
		}
		if inventory.AboveMax(it.Quantity, it.MaxStock) {
			out.AboveMax++
		}
		total = total.Add(inventory.TotalValue(it.Quantity, it.UnitPrice))
	}
	out.TotalValue = total.StringFixed(2)
	return out, nil
}

// Adjust aplica un movimiento de stock sobre el ítem (fila bloqueada) y registra el movimiento.
// Si el ítem empeora a Low Stock o Critical se notifica a administradores (best effort).
func (uc *ItemUseCase) Adjust(ctx context.Context, itemID, userID string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	movType := strings.ToUpper(strings.TrimSpace(in.Type))
	var (
		item      *entity.InventoryItem
		mov       *entity.InventoryMovement
		oldStatus inventory.StockStatus
	)
	err := uc.tx.Run(ctx, func(itemRepo repository.InventoryItemRepository, movRepo repository.InventoryMovementRepository) error {
		var err error
		item, err = itemRepo.GetForUpdate(ctx, itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		oldStatus = inventory.DeriveStatus(item.Quantity, item.MinStock, item.MaxStock, uc.thresholds)
		next, delta, err := inventory.ApplyMovement(item.Quantity, movType, in.Quantity)
		if err != nil {
			return err
		}
		if err := itemRepo.UpdateQuantity(ctx, item.ID, next); err != nil {
			return err
		}
		now := time.Now()
		item.Quantity = next
		item.UpdatedAt = now
		mov = &entity.InventoryMovement{
			ID:            uuid.New().String(),
			ItemID:        item.ID,
			Type:          movType,
			Delta:         delta,
			QuantityAfter: next,
			Reason:        in.Reason,
			CreatedBy:     userID,
			CreatedAt:     now,
		}
		return movRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	newStatus := inventory.DeriveStatus(item.Quantity, item.MinStock, item.MaxStock, uc.thresholds)
	uc.log.Info().
		Str("item_id", item.ID).
		Str("type", movType).
		Int64("delta", mov.Delta).
		Int64("quantity", item.Quantity).
		Str("status", string(newStatus)).
		Msg("stock ajustado")
	if uc.notifier != nil && newStatus.WorseThan(oldStatus) {
		if err := uc.notifier.NotifyLowStock(ctx, item, newStatus); err != nil {
			uc.log.Warn().Err(err).Str("item_id", item.ID).Msg("no se pudo notificar stock bajo")
		}
	}
	return &dto.AdjustStockResponse{
		Item:     uc.toResponse(item),
		Movement: toMovementResponse(mov),
	}, nil
}

// Transfer traslada stock del ítem a la bodega destino en una sola transacción.
// Bloquea las filas del SKU, crea el ítem destino si no existe y registra dos movimientos
// TRANSFER (salida y entrada) con el mismo TransactionID.
func (uc *ItemUseCase) Transfer(ctx context.Context, itemID, userID string, in dto.TransferStockRequest) (*dto.TransferStockResponse, error) {
	peek, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if peek == nil {
		return nil, domain.ErrNotFound
	}
	if peek.WarehouseID == in.ToWarehouseID {
		return nil, fmt.Errorf("%w: bodega de origen y destino son la misma", domain.ErrInvalidInput)
	}
	w, err := uc.warehouseRepo.GetByID(ctx, in.ToWarehouseID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: la bodega %s no existe", domain.ErrNotFound, in.ToWarehouseID)
	}

	txID := uuid.New().String()
	var (
		src, dst  *entity.InventoryItem
		movs      []*entity.InventoryMovement
		oldStatus inventory.StockStatus
	)
	err = uc.tx.Run(ctx, func(itemRepo repository.InventoryItemRepository, movRepo repository.InventoryMovementRepository) error {
		src, dst, movs = nil, nil, nil
		rows, err := itemRepo.ListBySKUForUpdate(ctx, peek.SKU)
		if err != nil {
			return err
		}
		for _, it := range rows {
			switch {
			case it.ID == itemID:
				src = it
			case it.WarehouseID == in.ToWarehouseID:
				dst = it
			}
		}
		if src == nil {
			return domain.ErrNotFound
		}
		oldStatus = inventory.DeriveStatus(src.Quantity, src.MinStock, src.MaxStock, uc.thresholds)
		var dstQty int64
		if dst != nil {
			dstQty = dst.Quantity
		}
		nextSrc, nextDst, err := inventory.ApplyTransfer(src.Quantity, dstQty, in.Quantity)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := itemRepo.UpdateQuantity(ctx, src.ID, nextSrc); err != nil {
			return err
		}
		src.Quantity, src.UpdatedAt = nextSrc, now
		if dst == nil {
			dst = &entity.InventoryItem{
				ID:          uuid.New().String(),
				SKU:         src.SKU,
				Name:        src.Name,
				WarehouseID: in.ToWarehouseID,
				UnitMeasure: src.UnitMeasure,
				Quantity:    nextDst,
				MinStock:    src.MinStock,
				MaxStock:    src.MaxStock,
				UnitPrice:   src.UnitPrice,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := itemRepo.Create(ctx, dst); err != nil {
				return err
			}
		} else {
			if err := itemRepo.UpdateQuantity(ctx, dst.ID, nextDst); err != nil {
				return err
			}
			dst.Quantity, dst.UpdatedAt = nextDst, now
		}
		for _, m := range []*entity.InventoryMovement{
			{ItemID: src.ID, Delta: -in.Quantity, QuantityAfter: nextSrc},
			{ItemID: dst.ID, Delta: in.Quantity, QuantityAfter: nextDst},
		} {
			m.ID = uuid.New().String()
			m.TransactionID = txID
			m.Type = entity.MovementTypeTRANSFER
			m.Reason = in.Reason
			m.CreatedBy = userID
			m.CreatedAt = now
			if err := movRepo.Create(ctx, m); err != nil {
				return err
			}
			movs = append(movs, m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	newStatus := inventory.DeriveStatus(src.Quantity, src.MinStock, src.MaxStock, uc.thresholds)
	uc.log.Info().
		Str("transaction_id", txID).
		Str("sku", src.SKU).
		Str("from_item_id", src.ID).
		Str("to_item_id", dst.ID).
		Str("to_warehouse_id", in.ToWarehouseID).
		Int64("quantity", in.Quantity).
		Msg("stock trasladado")
	if uc.notifier != nil && newStatus.WorseThan(oldStatus) {
		if err := uc.notifier.NotifyLowStock(ctx, src, newStatus); err != nil {
			uc.log.Warn().Err(err).Str("item_id", src.ID).Msg("no se pudo notificar stock bajo")
		}
	}
	out := &dto.TransferStockResponse{
		TransactionID: txID,
		Source:        uc.toResponse(src),
		Destination:   uc.toResponse(dst),
		Movements:     make([]dto.MovementResponse, 0, len(movs)),
	}
	for _, m := range movs {
		out.Movements = append(out.Movements, toMovementResponse(m))
	}
	return out, nil
}

// Movements historial de movimientos del ítem, más recientes primero.
func (uc *ItemUseCase) Movements(ctx context.Context, itemID string, page dto.PageRequest) ([]dto.MovementResponse, error) {
	page.DefaultPage()
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movRepo.ListByItem(ctx, itemID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out, nil
}

// Export genera el XLSX del inventario filtrado (sin paginar).
func (uc *ItemUseCase) Export(ctx context.Context, in dto.InventoryListRequest) ([]byte, error) {
	in.Limit, in.Offset = 0, 0
	filter := entity.InventoryFilter{WarehouseID: in.WarehouseID, Search: strings.TrimSpace(in.Search)}
	var want inventory.StockStatus
	if in.Status != "" {
		s, err := inventory.ParseStockStatus(in.Status)
		if err != nil {
			return nil, err
		}
		want = s
	}
	list, err := uc.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.InventoryItemResponse, 0, len(list))
	for _, it := range list {
		r := uc.toResponse(it)
		if want != "" && r.Status != string(want) {
			continue
		}
		rows = append(rows, r)
	}
	return uc.exporter.InventoryWorkbook(rows)
}

func (uc *ItemUseCase) toResponse(it *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ID:          it.ID,
		SKU:         it.SKU,
		Name:        it.Name,
		WarehouseID: it.WarehouseID,
		UnitMeasure: it.UnitMeasure,
		Quantity:    it.Quantity,
		MinStock:    it.MinStock,
		MaxStock:    it.MaxStock,
		UnitPrice:   it.UnitPrice,
		Status:      string(inventory.DeriveStatus(it.Quantity, it.MinStock, it.MaxStock, uc.thresholds)),
		TotalValue:  inventory.TotalValue(it.Quantity, it.UnitPrice).StringFixed(2),
		AboveMax:    inventory.AboveMax(it.Quantity, it.MaxStock),
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func toMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ItemID:        m.ItemID,
		Type:          m.Type,
		Delta:         m.Delta,
		QuantityAfter: m.QuantityAfter,
		Reason:        m.Reason,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
