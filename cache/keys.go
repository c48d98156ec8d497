package cache

import (
	"fmt"
	"net/url"
)

const (
	EntityCategories = "categories"
	EntityServices   = "services"
	EntityEmployees  = "employees"
	EntityProducts   = "products"
)

// Key builds a catalog key for an entity class and a variant such as a list
// query or a single id.
func Key(entity, variant string) string {
	return fmt.Sprintf("catalog:%s:%s", entity, variant)
}

// ListKey encodes query parameters in a stable order.
func ListKey(entity string, query url.Values) string {
	return Key(entity, "list:"+query.Encode())
}

func ItemKey(entity, id string) string {
	return Key(entity, "item:"+id)
}

// Pattern matches every key of an entity class.
func Pattern(entity string) string {
	return Key(entity, "*")
}
