// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/google/uuid"

	"orderapi/internal/core/domain/model/kernel"
	"orderapi/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with indexing for
// efficient querying by customer. Seq preserves insertion order for scans.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq          int64     `gorm:"autoIncrement;uniqueIndex"`
	CustomerID   string    `gorm:"index"`
	Items        []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount  float64
	Status       int
	StatusReason string
	PlacedAt     time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents a single order line in the order_items table.
// Rows are keyed by order and position so lines rehydrate in the order
// they were submitted.
type ItemDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"primaryKey"`
	ProductID string
	Quantity  int
	UnitPrice float64
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the item lines.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for position, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			OrderID:   aggregate.ID().Bytes(),
			Position:  position,
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		CustomerID:   aggregate.CustomerID(),
		Items:        itemDTOs,
		TotalAmount:  aggregate.TotalAmount(),
		Status:       int(aggregate.Status()),
		StatusReason: aggregate.StatusReason(),
		PlacedAt:     aggregate.PlacedAt(),
		UpdatedAt:    aggregate.UpdatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and item lines using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.ProductID, itemDTO.Quantity, itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.CustomerID,
		items,
		dto.TotalAmount,
		order.Status(dto.Status),
		dto.StatusReason,
		dto.PlacedAt,
		dto.UpdatedAt,
	)
}
