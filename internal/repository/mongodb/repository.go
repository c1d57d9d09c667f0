package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Real-Lux/Farm-App-sub001/internal/domain/models"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Repository defines the storage operations the engine's collaborators
// expose: lot and pricing reads, product catalog reads, order writes.
type Repository interface {
	ListLots(ctx context.Context, speciesFilter string) ([]models.Lot, error)
	GetLot(ctx context.Context, id string) (models.Lot, error)
	GetPricingTable(ctx context.Context, speciesKey string) (models.PricingTable, error)
	ListPricingTables(ctx context.Context) (map[string]models.PricingTable, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (models.Product, error)
	SaveOrder(ctx context.Context, record models.OrderRecord) error
	ListOrdersCollectingBetween(ctx context.Context, from, to time.Time) ([]models.OrderRecord, error)
}

const (
	lotsCollection     = "lots"
	pricingCollection  = "pricing_tables"
	productsCollection = "products"
	ordersCollection   = "orders"
)

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// ListLots returns all lots, optionally restricted to one species. Snapshot
// order follows the natural collection order so that the engine's tie-breaks
// stay deterministic.
func (r *MongoDBRepository) ListLots(ctx context.Context, speciesFilter string) ([]models.Lot, error) {
	filter := bson.M{}
	if speciesFilter != "" {
		filter["species_key"] = speciesFilter
	}

	cursor, err := r.collection(lotsCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list lots: %w", err)
	}
	defer cursor.Close(ctx)

	var lots []models.Lot
	if err := cursor.All(ctx, &lots); err != nil {
		return nil, fmt.Errorf("failed to decode lots: %w", err)
	}
	return lots, nil
}

// GetLot fetches a single lot by identifier.
func (r *MongoDBRepository) GetLot(ctx context.Context, id string) (models.Lot, error) {
	var lot models.Lot
	err := r.collection(lotsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&lot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Lot{}, fmt.Errorf("lot %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Lot{}, fmt.Errorf("failed to get lot %s: %w", id, err)
	}
	return lot, nil
}

// pricingEntryDoc stores prices as strings so that decimal values survive the
// round trip without float drift.
type pricingEntryDoc struct {
	AgeMonths float64 `bson:"age_months"`
	Sex       string  `bson:"sex"`
	Price     string  `bson:"price"`
}

type pricingTableDoc struct {
	SpeciesKey string            `bson:"_id"`
	Entries    []pricingEntryDoc `bson:"entries"`
}

func (d pricingTableDoc) toModel() (models.PricingTable, error) {
	table := models.PricingTable{
		SpeciesKey: d.SpeciesKey,
		Entries:    make([]models.PricingEntry, 0, len(d.Entries)),
	}
	for _, entry := range d.Entries {
		sex, err := models.ParseSex(entry.Sex)
		if err != nil {
			return models.PricingTable{}, fmt.Errorf("pricing table %s: %w", d.SpeciesKey, err)
		}
		value, err := parsePrice(entry.Price)
		if err != nil {
			return models.PricingTable{}, fmt.Errorf("pricing table %s: %w", d.SpeciesKey, err)
		}
		table.Entries = append(table.Entries, models.PricingEntry{
			AgeMonths: entry.AgeMonths,
			Sex:       sex,
			Price:     value,
		})
	}
	return table, nil
}

// GetPricingTable fetches the pricing table for a species. A species with no
// stored table yields an empty table, not an error; the aggregator reports it
// as missing pricing.
func (r *MongoDBRepository) GetPricingTable(ctx context.Context, speciesKey string) (models.PricingTable, error) {
	var doc pricingTableDoc
	err := r.collection(pricingCollection).FindOne(ctx, bson.M{"_id": speciesKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.PricingTable{SpeciesKey: speciesKey}, nil
	}
	if err != nil {
		return models.PricingTable{}, fmt.Errorf("failed to get pricing table %s: %w", speciesKey, err)
	}
	return doc.toModel()
}

// ListPricingTables loads every stored pricing table keyed by species.
func (r *MongoDBRepository) ListPricingTables(ctx context.Context) (map[string]models.PricingTable, error) {
	cursor, err := r.collection(pricingCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list pricing tables: %w", err)
	}
	defer cursor.Close(ctx)

	tables := make(map[string]models.PricingTable)
	for cursor.Next(ctx) {
		var doc pricingTableDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode pricing table: %w", err)
		}
		table, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		tables[table.SpeciesKey] = table
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("pricing table cursor: %w", err)
	}
	return tables, nil
}

type productDoc struct {
	ID        string `bson:"_id"`
	Name      string `bson:"name"`
	UnitPrice string `bson:"unit_price"`
}

func (d productDoc) toModel() (models.Product, error) {
	value, err := parsePrice(d.UnitPrice)
	if err != nil {
		return models.Product{}, fmt.Errorf("product %s: %w", d.ID, err)
	}
	return models.Product{ID: d.ID, Name: d.Name, UnitPrice: value}, nil
}

// ListProducts returns the flat-rate product catalog.
func (r *MongoDBRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection(productsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []models.Product
	for cursor.Next(ctx) {
		var doc productDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		product, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("product cursor: %w", err)
	}
	return products, nil
}

// GetProduct fetches a single catalog product by identifier.
func (r *MongoDBRepository) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var doc productDoc
	err := r.collection(productsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return doc.toModel()
}

// SaveOrder persists a confirmed order. The engine never decrements lot
// stock; deduction against the lots collection is the store owner's job.
func (r *MongoDBRepository) SaveOrder(ctx context.Context, record models.OrderRecord) error {
	doc := orderDocFromModel(record)
	if _, err := r.collection(ordersCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// ListOrdersCollectingBetween returns orders whose suggested collection date
// falls inside [from, to). Used by the reminder scheduler.
func (r *MongoDBRepository) ListOrdersCollectingBetween(ctx context.Context, from, to time.Time) ([]models.OrderRecord, error) {
	filter := bson.M{"suggested_collection_date": bson.M{"$gte": from, "$lt": to}}
	cursor, err := r.collection(ordersCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.OrderRecord
	for cursor.Next(ctx) {
		var doc orderDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		record, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("order cursor: %w", err)
	}
	return records, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
