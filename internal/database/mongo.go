package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/venicelab/orders/internal/domain"
)

// itemDocument is the Mongo shape of an order item. Position is the item's
// zero-based index within its order; reads sort by it so GetByOrderID always
// returns insertion order, which the repository contract promises.
type itemDocument struct {
	ID        string               `bson:"_id"`
	OrderID   string               `bson:"order_id"`
	Product   string               `bson:"product"`
	Quantity  int                  `bson:"quantity"`
	UnitPrice primitive.Decimal128 `bson:"unit_price"`
	Position  int                  `bson:"position"`
}

type OrderItemRepo struct {
	coll *mongo.Collection
}

func NewOrderItemRepo(db *mongo.Database, collection string) *OrderItemRepo {
	return &OrderItemRepo{coll: db.Collection(collection)}
}

func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func (r *OrderItemRepo) AddMany(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	docs := make([]any, 0, len(items))
	for i, it := range items {
		price, err := primitive.ParseDecimal128(it.UnitPrice.String())
		if err != nil {
			return fmt.Errorf("item %s unit price: %w", it.ID, err)
		}
		docs = append(docs, itemDocument{
			ID:        it.ID.String(),
			OrderID:   it.OrderID.String(),
			Product:   it.Product,
			Quantity:  it.Quantity,
			UnitPrice: price,
			Position:  i,
		})
	}

	_, err := r.coll.InsertMany(ctx, docs)
	return err
}

func (r *OrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]domain.OrderItem, error) {
	cur, err := r.coll.Find(ctx,
		bson.M{"order_id": orderID.String()},
		options.Find().SetSort(bson.D{{Key: "position", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}

	var docs []itemDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(docs))
	for _, d := range docs {
		item, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (d itemDocument) toDomain() (domain.OrderItem, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("item id %q: %w", d.ID, err)
	}
	orderID, err := uuid.Parse(d.OrderID)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("item %s order id %q: %w", d.ID, d.OrderID, err)
	}
	price, err := decimal.NewFromString(d.UnitPrice.String())
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("item %s unit price: %w", d.ID, err)
	}
	return domain.ReconstructOrderItem(id, orderID, d.Product, d.Quantity, price), nil
}
