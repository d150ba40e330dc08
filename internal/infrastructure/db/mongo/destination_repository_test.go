package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/travelplanner/booking-system/internal/core/ports"
)

func TestDestinationQuery_Empty(t *testing.T) {
	filter, sort := destinationQuery(ports.DestinationFilter{})
	if len(filter) != 0 {
		t.Fatalf("expected empty filter, got %v", filter)
	}
	if len(sort) != 1 || sort[0].Key != "_id" || sort[0].Value != 1 {
		t.Fatalf("expected id ascending sort, got %v", sort)
	}
}

func TestDestinationQuery_AllFilters(t *testing.T) {
	lo, hi := 100.0, 500.0
	filter, sort := destinationQuery(ports.DestinationFilter{
		Search:    "a.b",
		Country:   "Spain",
		MinPrice:  &lo,
		MaxPrice:  &hi,
		SortBy:    "price",
		SortOrder: "desc",
	})

	or, ok := filter["$or"].(bson.A)
	if !ok || len(or) != 3 {
		t.Fatalf("expected 3-way $or, got %v", filter["$or"])
	}
	re := or[0].(bson.M)["name"].(primitive.Regex)
	if re.Pattern != `a\.b` || re.Options != "i" {
		t.Fatalf("search must be quoted and case-insensitive, got %+v", re)
	}

	country := filter["country"].(primitive.Regex)
	if country.Pattern != "^Spain$" {
		t.Fatalf("unexpected country pattern %q", country.Pattern)
	}

	price := filter["price"].(bson.M)
	if price["$gte"] != 100.0 || price["$lte"] != 500.0 {
		t.Fatalf("unexpected price range %v", price)
	}

	if len(sort) != 2 || sort[0].Key != "price" || sort[0].Value != -1 {
		t.Fatalf("unexpected sort %v", sort)
	}
}
