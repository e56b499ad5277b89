package saleor

import (
	"encoding/json"

	"storefront-gateway/internal/app/model"
)

// AuthResult is the outcome of a successful tokenCreate or tokenRefresh.
// RefreshToken is empty for tokenRefresh, which only rotates the access
// token.
type AuthResult struct {
	User         *model.User
	Token        string
	RefreshToken string
}

// RegisterInput is the account creation payload.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Channel   string `json:"channel,omitempty"`
}

// CategoryDetail is a category together with its product listing.
type CategoryDetail struct {
	Category model.Category
	Products []model.Product
}

// graphQLRequest is the wire shape of a GraphQL POST body.
type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// graphQLResponse is the wire shape of a GraphQL response envelope.
type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type imageNode struct {
	URL string `json:"url"`
}

type moneyNode struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type categoryNode struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	BackgroundImage *imageNode `json:"backgroundImage"`
}

func (n categoryNode) toModel() model.Category {
	c := model.Category{ID: n.ID, Name: n.Name, Slug: n.Slug}
	if n.BackgroundImage != nil {
		c.BackgroundImage = n.BackgroundImage.URL
	}
	return c
}

type variantNode struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Pricing *struct {
		Price *struct {
			Gross *moneyNode `json:"gross"`
		} `json:"price"`
	} `json:"pricing"`
}

type productNode struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Thumbnail   *imageNode    `json:"thumbnail"`
	Category    *categoryNode `json:"category"`
	Pricing     *struct {
		PriceRange *struct {
			Start *struct {
				Gross *moneyNode `json:"gross"`
			} `json:"start"`
		} `json:"priceRange"`
	} `json:"pricing"`
	Variants []variantNode `json:"variants"`
}

func (n productNode) toModel() model.Product {
	p := model.Product{
		ID:          n.ID,
		Name:        n.Name,
		Slug:        n.Slug,
		Description: n.Description,
	}
	if n.Thumbnail != nil {
		p.Thumbnail = n.Thumbnail.URL
	}
	if n.Category != nil {
		c := n.Category.toModel()
		p.Category = &c
	}
	if n.Pricing != nil && n.Pricing.PriceRange != nil &&
		n.Pricing.PriceRange.Start != nil && n.Pricing.PriceRange.Start.Gross != nil {
		gross := *n.Pricing.PriceRange.Start.Gross
		p.Price = &model.Money{Amount: gross.Amount, Currency: gross.Currency}
	}
	for _, v := range n.Variants {
		mv := model.ProductVariant{ID: v.ID, Name: v.Name}
		if v.Pricing != nil && v.Pricing.Price != nil && v.Pricing.Price.Gross != nil {
			mv.Price = &model.Money{
				Amount:   v.Pricing.Price.Gross.Amount,
				Currency: v.Pricing.Price.Gross.Currency,
			}
		}
		p.Variants = append(p.Variants, mv)
	}
	return p
}

type productEdges struct {
	Edges []struct {
		Node productNode `json:"node"`
	} `json:"edges"`
}

func (e productEdges) toModels() []model.Product {
	products := make([]model.Product, 0, len(e.Edges))
	for _, edge := range e.Edges {
		products = append(products, edge.Node.toModel())
	}
	return products
}

// Response payload shells, one per operation.

type tokenCreateData struct {
	TokenCreate struct {
		Token        string         `json:"token"`
		RefreshToken string         `json:"refreshToken"`
		User         *model.User    `json:"user"`
		Errors       []AccountError `json:"errors"`
	} `json:"tokenCreate"`
}

type tokenRefreshData struct {
	TokenRefresh struct {
		Token  string         `json:"token"`
		User   *model.User    `json:"user"`
		Errors []AccountError `json:"errors"`
	} `json:"tokenRefresh"`
}

type accountRegisterData struct {
	AccountRegister struct {
		User *struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
		Errors []AccountError `json:"errors"`
	} `json:"accountRegister"`
}

type accountUpdateData struct {
	AccountUpdate struct {
		User   *model.User    `json:"user"`
		Errors []AccountError `json:"errors"`
	} `json:"accountUpdate"`
}

type passwordChangeData struct {
	PasswordChange struct {
		Errors []AccountError `json:"errors"`
	} `json:"passwordChange"`
}

type meData struct {
	Me *model.User `json:"me"`
}

type productsData struct {
	Products productEdges `json:"products"`
}

type productBySlugData struct {
	Product *productNode `json:"product"`
}

type categoriesData struct {
	Categories struct {
		Edges []struct {
			Node categoryNode `json:"node"`
		} `json:"edges"`
	} `json:"categories"`
}

type categoryBySlugData struct {
	Category *struct {
		categoryNode
		Products productEdges `json:"products"`
	} `json:"category"`
}
