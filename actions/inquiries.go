package actions

import (
	"context"
	"strings"

	"gyangroup/models"
)

const entityInquiry = "Inquiry"

type InquiryInput struct {
	Name    string `json:"name" validate:"min=2"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"min=10"`
	Intrest string `json:"intrest" validate:"min=2"`
	Message string `json:"message" validate:"min=10"`
}

func (in *InquiryInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Intrest = strings.TrimSpace(in.Intrest)
}

// UpsertInquiry records a new inquiry from the contact form when id is empty
// and edits inquiry id otherwise.
func (a *Actions) UpsertInquiry(ctx context.Context, in InquiryInput, id string) Result[*models.Inquiry] {
	in.normalize()
	if issues := a.check(in); issues != nil {
		return invalid[*models.Inquiry](issues)
	}

	inq := &models.Inquiry{
		ID:      id,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Intrest: in.Intrest,
		Message: in.Message,
	}
	var err error
	message := "Inquiry submitted successfully"
	if id == "" {
		err = a.store.CreateInquiry(ctx, inq)
	} else {
		err = a.store.UpdateInquiry(ctx, inq)
		message = "Inquiry updated successfully"
	}
	if err != nil {
		return fromStoreError[*models.Inquiry](a.logger, "upsert inquiry", entityInquiry, "", err)
	}

	a.revalidator.Revalidate(inquiryPages...)
	return ok(inq, message)
}

func (a *Actions) GetInquiryByID(ctx context.Context, id string) Result[*models.Inquiry] {
	inq, err := a.store.GetInquiry(ctx, id)
	if err != nil {
		return fromStoreError[*models.Inquiry](a.logger, "get inquiry", entityInquiry, "", err)
	}
	return ok(inq, "")
}

// ListInquiries returns inquiries newest first.
func (a *Actions) ListInquiries(ctx context.Context, q ListQuery) Result[[]models.Inquiry] {
	empty := []models.Inquiry{}
	if issues := a.check(q); issues != nil {
		return withData(invalid[[]models.Inquiry](issues), empty)
	}

	inquiries, err := a.store.ListInquiries(ctx, q.options())
	if err != nil {
		return withData(fromStoreError[[]models.Inquiry](a.logger, "list inquiries", entityInquiry, "", err), empty)
	}
	return okCount(inquiries, int64(len(inquiries)))
}

func (a *Actions) DeleteInquiry(ctx context.Context, id string) Result[any] {
	if err := a.store.DeleteInquiry(ctx, id); err != nil {
		return fromStoreError[any](a.logger, "delete inquiry", entityInquiry, "", err)
	}
	a.revalidator.Revalidate(inquiryPages...)
	return ok[any](nil, "Inquiry deleted successfully")
}
