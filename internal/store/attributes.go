package store

import (
	"context"

	"inventory-service/internal/models"
)

const attributeValueColumns = `
	SELECT av.id, av.attribute_value, av.attribute_id, a.name AS attribute_name
	FROM attribute_values av
	JOIN attributes a ON a.id = av.attribute_id`

// CreateAttribute creates an attribute
func (s *Store) CreateAttribute(ctx context.Context, a *models.Attribute) error {
	if err := models.Validate(a); err != nil {
		return err
	}

	return classify(s.q.GetContext(ctx, &a.ID,
		"INSERT INTO attributes (name, description) VALUES ($1, $2) RETURNING id",
		a.Name, a.Description))
}

// GetAttributeByID retrieves an attribute by ID
func (s *Store) GetAttributeByID(ctx context.Context, id int64) (*models.Attribute, error) {
	var a models.Attribute
	err := s.q.GetContext(ctx, &a, "SELECT * FROM attributes WHERE id = $1", id)
	if err != nil {
		return nil, notFound(err, "attribute", id)
	}
	return &a, nil
}

// ListAttributes retrieves all attributes
func (s *Store) ListAttributes(ctx context.Context) ([]models.Attribute, error) {
	attributes := []models.Attribute{}
	err := s.q.SelectContext(ctx, &attributes, "SELECT * FROM attributes ORDER BY name, id")
	return attributes, err
}

// UpdateAttribute updates an attribute
func (s *Store) UpdateAttribute(ctx context.Context, a *models.Attribute) error {
	if err := models.Validate(a); err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx,
		"UPDATE attributes SET name = $1, description = $2 WHERE id = $3",
		a.Name, a.Description, a.ID)
	if err != nil {
		return classify(err)
	}
	return checkAffected(res, "attribute", a.ID)
}

// DeleteAttribute deletes an attribute together with its values
func (s *Store) DeleteAttribute(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "attributes", "attribute", id)
}

// CreateAttributeValue creates a value of an attribute
func (s *Store) CreateAttributeValue(ctx context.Context, v *models.AttributeValue) error {
	if err := models.Validate(v); err != nil {
		return err
	}

	return classify(s.q.GetContext(ctx, &v.ID,
		"INSERT INTO attribute_values (attribute_value, attribute_id) VALUES ($1, $2) RETURNING id",
		v.AttributeValue, v.AttributeID))
}

// GetAttributeValueByID retrieves an attribute value, with its attribute name, by ID
func (s *Store) GetAttributeValueByID(ctx context.Context, id int64) (*models.AttributeValue, error) {
	var v models.AttributeValue
	err := s.q.GetContext(ctx, &v, attributeValueColumns+" WHERE av.id = $1", id)
	if err != nil {
		return nil, notFound(err, "attribute value", id)
	}
	return &v, nil
}

// ListAttributeValues retrieves the values of one attribute
func (s *Store) ListAttributeValues(ctx context.Context, attributeID int64) ([]models.AttributeValue, error) {
	values := []models.AttributeValue{}
	err := s.q.SelectContext(ctx, &values,
		attributeValueColumns+" WHERE av.attribute_id = $1 ORDER BY av.id", attributeID)
	return values, err
}

// ListAllAttributeValues retrieves every attribute value
func (s *Store) ListAllAttributeValues(ctx context.Context) ([]models.AttributeValue, error) {
	values := []models.AttributeValue{}
	err := s.q.SelectContext(ctx, &values, attributeValueColumns+" ORDER BY a.name, av.id")
	return values, err
}

// UpdateAttributeValue updates an attribute value
func (s *Store) UpdateAttributeValue(ctx context.Context, v *models.AttributeValue) error {
	if err := models.Validate(v); err != nil {
		return err
	}

	res, err := s.q.ExecContext(ctx,
		"UPDATE attribute_values SET attribute_value = $1, attribute_id = $2 WHERE id = $3",
		v.AttributeValue, v.AttributeID, v.ID)
	if err != nil {
		return classify(err)
	}
	return checkAffected(res, "attribute value", v.ID)
}

// DeleteAttributeValue deletes an attribute value and its product line links
func (s *Store) DeleteAttributeValue(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "attribute_values", "attribute value", id)
}
