package storage

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dnminh/fashionshop-backend/internal/types/catalog"
)

func (s *MongoStorage) CreateCategory(ctx context.Context, c *catalog.Category) error {
	res, err := s.categories().InsertOne(ctx, c)
	if err != nil {
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStorage) FindCategoryByID(ctx context.Context, id string) (*catalog.Category, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var c catalog.Category
	if err := s.categories().FindOne(ctx, bson.M{"_id": objID}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MongoStorage) FindCategoryByName(ctx context.Context, name string) (*catalog.Category, error) {
	var c catalog.Category
	if err := s.categories().FindOne(ctx, bson.M{"cat_name": name}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MongoStorage) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	cur, err := s.categories().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "cat_name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var categories []catalog.Category
	if err := cur.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *MongoStorage) UpdateCategory(ctx context.Context, c *catalog.Category) error {
	res, err := s.categories().ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoStorage) DeleteCategory(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.categories().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoStorage) CreateProduct(ctx context.Context, p *catalog.Product) error {
	res, err := s.products().InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStorage) FindProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var p catalog.Product
	if err := s.products().FindOne(ctx, bson.M{"_id": objID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MongoStorage) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.findProducts(ctx, bson.M{})
}

func (s *MongoStorage) SearchProducts(ctx context.Context, f catalog.ProductFilter) ([]catalog.Product, error) {
	filter := bson.M{}
	if f.CategoryID != "" {
		catID, err := oid(f.CategoryID)
		if err != nil {
			return nil, err
		}
		filter["cat_id"] = catID
	}
	if f.Status != "" {
		filter["status_product"] = f.Status
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["pro_price"] = price
	}
	if f.HasImage != nil {
		if *f.HasImage {
			filter["imageURL"] = bson.M{"$exists": true, "$ne": ""}
		} else {
			filter["$or"] = bson.A{
				bson.M{"imageURL": bson.M{"$exists": false}},
				bson.M{"imageURL": ""},
			}
		}
	}
	if f.DateFrom != nil || f.DateTo != nil {
		date := bson.M{}
		if f.DateFrom != nil {
			date["$gte"] = *f.DateFrom
		}
		if f.DateTo != nil {
			date["$lte"] = *f.DateTo
		}
		filter["createdAt"] = date
	}
	if f.Query != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(f.Query), Options: "i"}
		filter["$and"] = bson.A{bson.M{"$or": bson.A{
			bson.M{"pro_name": rx},
			bson.M{"description": rx},
		}}}
	}
	return s.findProducts(ctx, filter)
}

func (s *MongoStorage) findProducts(ctx context.Context, filter bson.M) ([]catalog.Product, error) {
	cur, err := s.products().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var products []catalog.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MongoStorage) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	res, err := s.products().ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoStorage) DeleteProduct(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.products().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	if _, err := s.variants().DeleteMany(ctx, bson.M{"pro_id": objID}); err != nil {
		return err
	}
	return nil
}

func (s *MongoStorage) CreateVariant(ctx context.Context, v *catalog.Variant) error {
	res, err := s.variants().InsertOne(ctx, v)
	if err != nil {
		return err
	}
	v.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStorage) FindVariantByID(ctx context.Context, id string) (*catalog.Variant, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var v catalog.Variant
	if err := s.variants().FindOne(ctx, bson.M{"_id": objID}).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *MongoStorage) ListVariants(ctx context.Context, f catalog.VariantFilter) ([]catalog.Variant, error) {
	filter := bson.M{}
	if f.ProductID != "" {
		proID, err := oid(f.ProductID)
		if err != nil {
			return nil, err
		}
		filter["pro_id"] = proID
	}
	if f.ColorID != "" {
		colorID, err := oid(f.ColorID)
		if err != nil {
			return nil, err
		}
		filter["color_id"] = colorID
	}
	if f.SizeID != "" {
		sizeID, err := oid(f.SizeID)
		if err != nil {
			return nil, err
		}
		filter["size_id"] = sizeID
	}
	cur, err := s.variants().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var variants []catalog.Variant
	if err := cur.All(ctx, &variants); err != nil {
		return nil, err
	}
	return variants, nil
}

func (s *MongoStorage) UpdateVariant(ctx context.Context, v *catalog.Variant) error {
	res, err := s.variants().ReplaceOne(ctx, bson.M{"_id": v.ID}, v)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoStorage) DeleteVariant(ctx context.Context, id string) error {
	objID, err := oid(id)
	if err != nil {
		return err
	}
	res, err := s.variants().DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *MongoStorage) FindColorByID(ctx context.Context, id string) (*catalog.Color, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var c catalog.Color
	if err := s.colors().FindOne(ctx, bson.M{"_id": objID}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MongoStorage) FindSizeByID(ctx context.Context, id string) (*catalog.Size, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var sz catalog.Size
	if err := s.sizes().FindOne(ctx, bson.M{"_id": objID}).Decode(&sz); err != nil {
		return nil, err
	}
	return &sz, nil
}

func (s *MongoStorage) FindImageByID(ctx context.Context, id string) (*catalog.Image, error) {
	objID, err := oid(id)
	if err != nil {
		return nil, err
	}
	var img catalog.Image
	if err := s.images().FindOne(ctx, bson.M{"_id": objID}).Decode(&img); err != nil {
		return nil, err
	}
	return &img, nil
}
