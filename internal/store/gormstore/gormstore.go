package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/ecommerce_backend/internal/cart"
	"github.com/Skotchmaster/ecommerce_backend/internal/models"
	"github.com/Skotchmaster/ecommerce_backend/internal/store"
)

const productSequence = "product_id"

type GormRepo struct {
	DB *gorm.DB
}

var _ store.Store = (*GormRepo)(nil)

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).AutoMigrate(&models.User{}, &models.Product{}, &models.Sequence{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func (r *GormRepo) Ping(ctx context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *GormRepo) Close(context.Context) error {
	sqlDB, err := r.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return fmt.Errorf("create user %q: %w", u.Email, store.ErrDuplicateEmail)
		}
		return err
	}
	return nil
}

func (r *GormRepo) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *GormRepo) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *GormRepo) UpdateCart(ctx context.Context, userID string, c cart.Cart) error {
	res := r.DB.WithContext(ctx).
		Model(&models.User{ID: userID}).
		Select("cart_data").
		Updates(&models.User{CartData: c})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Order("product_id ASC").
		Order("date ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// NextProductID never hands out an id twice, even after the product that
// held the highest id has been deleted.
func (r *GormRepo) NextProductID(ctx context.Context) (int, error) {
	var next int
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Sequence{Name: productSequence, Value: 0}).Error; err != nil {
			return err
		}

		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var seq models.Sequence
		if err := q.Where("name = ?", productSequence).First(&seq).Error; err != nil {
			return err
		}

		var maxID int
		if err := tx.Model(&models.Product{}).
			Select("COALESCE(MAX(product_id), 0)").
			Scan(&maxID).Error; err != nil {
			return err
		}

		next = max(seq.Value, maxID) + 1
		return tx.Model(&models.Sequence{}).
			Where("name = ?", productSequence).
			Update("value", next).Error
	})
	if err != nil {
		return 0, fmt.Errorf("next product id: %w", err)
	}
	return next, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, productID int) (bool, error) {
	var p models.Product
	res := r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("date ASC").
		Limit(1).
		Find(&p)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	del := r.DB.WithContext(ctx).Delete(&models.Product{}, "id = ?", p.ID)
	if del.Error != nil {
		return false, del.Error
	}
	return del.RowsAffected > 0, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
