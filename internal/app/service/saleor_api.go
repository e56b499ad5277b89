package service

import (
	"context"

	"storefront-gateway/internal/app/model"
	"storefront-gateway/pkg/saleor"
)

// SaleorAPI is the surface of the commerce backend the services consume.
// *saleor.Client satisfies it; tests substitute a fake.
type SaleorAPI interface {
	TokenCreate(ctx context.Context, email, password string) (*saleor.AuthResult, error)
	TokenRefresh(ctx context.Context, refreshToken string) (*saleor.AuthResult, error)
	AccountRegister(ctx context.Context, input saleor.RegisterInput) error
	AccountUpdate(ctx context.Context, token, firstName, lastName string) (*model.User, error)
	PasswordChange(ctx context.Context, token, oldPassword, newPassword string) error
	Me(ctx context.Context, token string) (*model.User, error)
	Products(ctx context.Context, first int) ([]model.Product, error)
	ProductBySlug(ctx context.Context, slug string) (*model.Product, error)
	Categories(ctx context.Context, first int) ([]model.Category, error)
	CategoryBySlug(ctx context.Context, slug string, first int) (*saleor.CategoryDetail, error)
	SearchProducts(ctx context.Context, query string, first int) ([]model.Product, error)
}
