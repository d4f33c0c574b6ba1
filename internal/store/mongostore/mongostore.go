package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skotchmaster/ecommerce_backend/internal/cart"
	"github.com/Skotchmaster/ecommerce_backend/internal/models"
	"github.com/Skotchmaster/ecommerce_backend/internal/store"
)

const (
	usersCollection    = "users"
	productsCollection = "products"
	countersCollection = "counters"

	productSequence = "product_id"
)

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
	CartData map[string]int     `bson:"cartData"`
	Date     time.Time          `bson:"date"`
}

type productDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProductID int                `bson:"id"`
	Name      string             `bson:"name"`
	Image     string             `bson:"image"`
	Category  string             `bson:"category"`
	NewPrice  float64            `bson:"new_price"`
	OldPrice  float64            `bson:"old_price"`
	Date      time.Time          `bson:"date"`
	Available bool               `bson:"available"`
}

type counterDoc struct {
	ID  string `bson:"_id"`
	Seq int    `bson:"seq"`
}

type Repo struct {
	client   *mongo.Client
	users    *mongo.Collection
	products *mongo.Collection
	counters *mongo.Collection
}

var _ store.Store = (*Repo)(nil)

func Open(ctx context.Context, uri, database string) (*Repo, error) {
	if uri == "" {
		return nil, fmt.Errorf("MONGO_URL is empty")
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(20).
		SetConnectTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	r := New(client, database)
	if err := r.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return r, nil
}

func New(client *mongo.Client, database string) *Repo {
	db := client.Database(database)
	return &Repo{
		client:   client,
		users:    db.Collection(usersCollection),
		products: db.Collection(productsCollection),
		counters: db.Collection(countersCollection),
	}
}

func (r *Repo) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create users.email index: %w", err)
	}

	_, err = r.products.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create products.id index: %w", err)
	}
	return nil
}

func (r *Repo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

func (r *Repo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *Repo) CreateUser(ctx context.Context, u *models.User) error {
	if u.Date.IsZero() {
		u.Date = time.Now().UTC()
	}
	doc := userDoc{
		Name:     u.Name,
		Email:    u.Email,
		Password: u.Password,
		CartData: u.CartData,
		Date:     u.Date,
	}

	res, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("create user %q: %w", u.Email, store.ErrDuplicateEmail)
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid.Hex()
	}
	return nil
}

func (r *Repo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findUser(ctx, bson.M{"email": email})
}

func (r *Repo) UserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	return r.findUser(ctx, bson.M{"_id": oid})
}

func (r *Repo) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDoc
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &models.User{
		ID:       doc.ID.Hex(),
		Name:     doc.Name,
		Email:    doc.Email,
		Password: doc.Password,
		CartData: cart.Cart(doc.CartData),
		Date:     doc.Date,
	}, nil
}

func (r *Repo) UpdateCart(ctx context.Context, userID string, c cart.Cart) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return store.ErrNotFound
	}
	res, err := r.users.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"cartData": map[string]int(c)}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *Repo) ListProducts(ctx context.Context) ([]models.Product, error) {
	cur, err := r.products.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := make([]models.Product, 0)
	for cur.Next(ctx) {
		var doc productDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, doc.toModel())
	}
	return items, cur.Err()
}

// NextProductID lifts the counter to the current maximum before
// incrementing it, so legacy catalogs without a counter keep counting.
func (r *Repo) NextProductID(ctx context.Context) (int, error) {
	maxID := 0
	var last productDoc
	err := r.products.FindOne(ctx, bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}}).SetProjection(bson.M{"id": 1}),
	).Decode(&last)
	switch {
	case err == nil:
		maxID = last.ProductID
	case errors.Is(err, mongo.ErrNoDocuments):
	default:
		return 0, fmt.Errorf("next product id: %w", err)
	}

	_, err = r.counters.UpdateOne(ctx,
		bson.M{"_id": productSequence},
		bson.M{"$max": bson.M{"seq": maxID}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return 0, fmt.Errorf("next product id: %w", err)
	}

	var counter counterDoc
	err = r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": productSequence},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next product id: %w", err)
	}
	return counter.Seq, nil
}

func (r *Repo) CreateProduct(ctx context.Context, p *models.Product) error {
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}
	doc := productDoc{
		ProductID: p.ProductID,
		Name:      p.Name,
		Image:     p.Image,
		Category:  p.Category,
		NewPrice:  p.NewPrice,
		OldPrice:  p.OldPrice,
		Date:      p.Date,
		Available: p.Available,
	}
	res, err := r.products.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return nil
}

func (r *Repo) DeleteProduct(ctx context.Context, productID int) (bool, error) {
	res, err := r.products.DeleteOne(ctx, bson.M{"id": productID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (d productDoc) toModel() models.Product {
	return models.Product{
		ID:        d.ID.Hex(),
		ProductID: d.ProductID,
		Name:      d.Name,
		Image:     d.Image,
		Category:  d.Category,
		NewPrice:  d.NewPrice,
		OldPrice:  d.OldPrice,
		Date:      d.Date,
		Available: d.Available,
	}
}
