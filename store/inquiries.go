package store

import (
	"context"

	"gyangroup/models"
)

const entityInquiry = "inquiry"

func (s *Store) CreateInquiry(ctx context.Context, i *models.Inquiry) error {
	return wrap("CreateInquiry", entityInquiry, "", s.db.WithContext(ctx).Create(i).Error)
}

func (s *Store) UpdateInquiry(ctx context.Context, i *models.Inquiry) error {
	res := s.db.WithContext(ctx).Model(&models.Inquiry{}).
		Where("id = ?", i.ID).
		Select("name", "email", "phone", "intrest", "message", "updated_at").
		Updates(i)
	if res.Error != nil {
		return wrap("UpdateInquiry", entityInquiry, i.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("UpdateInquiry", entityInquiry, i.ID, ErrNotFound)
	}
	return wrap("UpdateInquiry", entityInquiry, i.ID, s.db.WithContext(ctx).Take(i, "id = ?", i.ID).Error)
}

func (s *Store) GetInquiry(ctx context.Context, id string) (*models.Inquiry, error) {
	var i models.Inquiry
	if err := s.db.WithContext(ctx).Take(&i, "id = ?", id).Error; err != nil {
		return nil, wrap("GetInquiry", entityInquiry, id, err)
	}
	return &i, nil
}

// ListInquiries returns inquiries, newest first.
func (s *Store) ListInquiries(ctx context.Context, opts ListOptions) ([]models.Inquiry, error) {
	inquiries := []models.Inquiry{}
	if err := opts.apply(s.db.WithContext(ctx).Order("created_at DESC")).Find(&inquiries).Error; err != nil {
		return nil, wrap("ListInquiries", entityInquiry, "", err)
	}
	return inquiries, nil
}

func (s *Store) DeleteInquiry(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Inquiry{})
	if res.Error != nil {
		return wrap("DeleteInquiry", entityInquiry, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap("DeleteInquiry", entityInquiry, id, ErrNotFound)
	}
	return nil
}
