// Package graphql exposes a read-only GraphQL view of the catalog at
// /graphql, next to the REST endpoints.
package graphql

import (
	"encoding/json"
	"net/http"

	gql "github.com/graphql-go/graphql"
	"gorm.io/gorm"

	"github.com/velora-shop/velora/app/repositories"
	"github.com/velora-shop/velora/app/services"
	gqlpkg "github.com/velora-shop/velora/pkg/graphql"
	"github.com/velora-shop/velora/pkg/logger"
	"github.com/velora-shop/velora/pkg/response"
)

var categoryType = gql.NewObject(gql.ObjectConfig{
	Name: "Category",
	Fields: gql.Fields{
		"id":    &gql.Field{Type: gql.Int},
		"name":  &gql.Field{Type: gql.String},
		"image": &gql.Field{Type: gql.String},
	},
})

var productType = gql.NewObject(gql.ObjectConfig{
	Name: "Product",
	Fields: gql.Fields{
		"id":              &gql.Field{Type: gql.Int},
		"name":            &gql.Field{Type: gql.String},
		"description":     &gql.Field{Type: gql.String},
		"price":           &gql.Field{Type: gql.Float},
		"discountedPrice": &gql.Field{Type: gql.Float},
		"gender":          &gql.Field{Type: gql.String},
		"sizes":           &gql.Field{Type: gql.NewList(gql.String)},
		"colors":          &gql.Field{Type: gql.NewList(gql.String)},
		"quantity":        &gql.Field{Type: gql.Int},
		"image":           &gql.Field{Type: gql.String},
		"category":        &gql.Field{Type: categoryType},
	},
})

// NewSchema builds the read-only catalog schema backed by the given
// database.
func NewSchema(db *gorm.DB) (gql.Schema, error) {
	catalog := services.NewCatalogService(db)

	root := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"categories": &gql.Field{
				Type: gql.NewList(categoryType),
				Args: gql.FieldConfigArgument{
					"name": &gql.ArgumentConfig{Type: gql.String},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					name, _ := p.Args["name"].(string)
					return catalog.ListCategories(name)
				},
			},
			"category": &gql.Field{
				Type: categoryType,
				Args: gql.FieldConfigArgument{
					"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					return catalog.GetCategory(uint(id))
				},
			},
			"products": &gql.Field{
				Type: gql.NewList(productType),
				Args: gql.FieldConfigArgument{
					"name":       &gql.ArgumentConfig{Type: gql.String},
					"gender":     &gql.ArgumentConfig{Type: gql.String},
					"categoryId": &gql.ArgumentConfig{Type: gql.Int},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					var filter repositories.ProductFilter
					filter.Name, _ = p.Args["name"].(string)
					filter.Gender, _ = p.Args["gender"].(string)
					if id, ok := p.Args["categoryId"].(int); ok {
						filter.CategoryID = uint(id)
					}
					return catalog.ListProducts(filter)
				},
			},
			"product": &gql.Field{
				Type: productType,
				Args: gql.FieldConfigArgument{
					"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					return catalog.GetProduct(uint(id))
				},
			},
		},
	})

	return gqlpkg.NewSchema(root)
}

// Handler executes POSTed GraphQL queries against the catalog schema.
func Handler(db *gorm.DB) http.HandlerFunc {
	schema, err := NewSchema(db)
	if err != nil {
		logger.Error("graphql: schema build failed", "error", err)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query     string                 `json:"query"`
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Query == "" {
			response.Error(w, http.StatusBadRequest, "Invalid GraphQL request")
			return
		}

		result := gqlpkg.Do(r.Context(), schema, body.Query, body.Variables)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}
}
