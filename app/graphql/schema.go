// Package graphql exposes a read-only query API over the catalog and
// billing data, for back-office dashboards that want to shape their own
// responses.
package graphql

import (
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/models"
	"github.com/Akibsaiyad14/clothsbillingandinventory/app/repositories"
	pkggraphql "github.com/Akibsaiyad14/clothsbillingandinventory/pkg/graphql"
	"gorm.io/gorm"
)

// resolveID digs the primary key out of the embedded gorm.Model, which the
// default resolver cannot see through.
func resolveID(p graphql.ResolveParams) (interface{}, error) {
	switch s := p.Source.(type) {
	case models.ClothItem:
		return s.ID, nil
	case models.Bill:
		return s.ID, nil
	case models.BillItem:
		return s.ID, nil
	}
	return nil, nil
}

var stockType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Stock",
	Fields: graphql.Fields{
		"quantity":          &graphql.Field{Type: graphql.Int},
		"low_stock_threshold": &graphql.Field{Type: graphql.Int},
	},
})

var itemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Item",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.Int, Resolve: resolveID},
		"name":     &graphql.Field{Type: graphql.String},
		"category": &graphql.Field{Type: graphql.String},
		"size":     &graphql.Field{Type: graphql.String},
		"color":    &graphql.Field{Type: graphql.String},
		"price":    &graphql.Field{Type: graphql.Float},
		"sku":      &graphql.Field{Type: graphql.String},
		"stock":    &graphql.Field{Type: stockType},
	},
})

var billItemType = graphql.NewObject(graphql.ObjectConfig{
	Name: "BillItem",
	Fields: graphql.Fields{
		"item_id":    &graphql.Field{Type: graphql.Int},
		"quantity":  &graphql.Field{Type: graphql.Int},
		"unit_price": &graphql.Field{Type: graphql.Float},
		"subtotal":  &graphql.Field{Type: graphql.Float},
		"item":      &graphql.Field{Type: itemType},
	},
})

var billType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Bill",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.Int, Resolve: resolveID},
		"bill_number":   &graphql.Field{Type: graphql.String},
		"customer_name": &graphql.Field{Type: graphql.String},
		"total_amount":  &graphql.Field{Type: graphql.Float},
		"discount":     &graphql.Field{Type: graphql.Float},
		"tax_rate":      &graphql.Field{Type: graphql.Float},
		"final_amount":  &graphql.Field{Type: graphql.Float},
		"items":        &graphql.Field{Type: graphql.NewList(billItemType)},
	},
})

// NewSchema builds the read-only root query over the given database.
func NewSchema(db *gorm.DB) (graphql.Schema, error) {
	catalog := repositories.NewCatalogRepository(db)
	bills := repositories.NewBillRepository(db)

	root := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"items": &graphql.Field{
				Type: graphql.NewList(itemType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.String},
					"size":     &graphql.ArgumentConfig{Type: graphql.String},
					"search":   &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					f := repositories.ItemFilter{}
					if v, ok := p.Args["category"].(string); ok {
						f.Category = v
					}
					if v, ok := p.Args["size"].(string); ok {
						f.Size = v
					}
					if v, ok := p.Args["search"].(string); ok {
						f.Search = v
					}
					return catalog.List(f)
				},
			},
			"item": &graphql.Field{
				Type: itemType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, ok := p.Args["id"].(int)
					if !ok || id < 1 {
						return nil, fmt.Errorf("invalid item id")
					}
					return catalog.FindByID(uint(id))
				},
			},
			"lowStock": &graphql.Field{
				Type: graphql.NewList(itemType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return catalog.LowStock()
				},
			},
			"bill": &graphql.Field{
				Type: billType,
				Args: graphql.FieldConfigArgument{
					"number": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					number, _ := p.Args["number"].(string)
					return bills.FindByNumber(number)
				},
			},
			"bills": &graphql.Field{
				Type: graphql.NewList(billType),
				Args: graphql.FieldConfigArgument{
					"page":    &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"perPage": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, _ := p.Args["page"].(int)
					perPage, _ := p.Args["perPage"].(int)
					list, _, err := bills.List(repositories.BillFilter{Page: page, PerPage: perPage})
					return list, err
				},
			},
		},
	})

	return pkggraphql.NewSchema(root)
}
