package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/atinyakov/AdmissionDesk/internal/export"
	"github.com/atinyakov/AdmissionDesk/internal/models"
	"go.uber.org/zap"
)

// InquiryService defines the inquiry operations required by the HTTP handlers.
type InquiryService interface {
	// Submit stores a new inquiry and returns it with its ID assigned.
	Submit(ctx context.Context, in models.Inquiry) (models.Inquiry, error)
	// List returns every stored inquiry in storage order.
	List(ctx context.Context) ([]models.Inquiry, error)
	// Export renders every stored inquiry as an xlsx workbook.
	Export(ctx context.Context) ([]byte, error)
}

// InquiryHandler handles inquiry submission, listing and export.
type InquiryHandler struct {
	Inquiries InquiryService
	Logger    *zap.Logger
}

// Submit handles POST /submit. The body is the admissions form, either
// form-encoded or JSON; on success the client is sent back home.
func (h *InquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInquiry(r)
	if err != nil {
		http.Error(w, invalidRequestMessage, http.StatusBadRequest)
		return
	}

	if _, err := h.Inquiries.Submit(r.Context(), in); err != nil {
		h.Logger.Error("error saving data", zap.Error(err))
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Display handles GET /display and writes every inquiry as a JSON array.
func (h *InquiryHandler) Display(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.Inquiries.List(r.Context())
	if err != nil {
		h.Logger.Error("error fetching data", zap.Error(err))
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(inquiries)
}

// Export handles GET /export and sends every inquiry as an xlsx attachment.
func (h *InquiryHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.Inquiries.Export(r.Context())
	if err != nil {
		h.Logger.Error("error exporting data", zap.Error(err))
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+export.Filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

func decodeInquiry(r *http.Request) (models.Inquiry, error) {
	fields, err := inquiryFields(r)
	if err != nil {
		return models.Inquiry{}, err
	}
	return models.Inquiry{
		StudentName:    fields["studname"],
		ParentName:     fields["parentname"],
		Email:          fields["email"],
		Phone:          fields["phone"],
		Grade:          fields["grade"],
		YearOfPassing:  fields["year_of_passing"],
		PriorSchool:    fields["pschool"],
		ReferralSource: fields["referral"],
	}, nil
}

// inquiryFields reads the inquiry fields from a form or JSON body.
// JSON numbers and booleans are kept as their literal text.
func inquiryFields(r *http.Request) (map[string]string, error) {
	fields := make(map[string]string, len(export.Columns))

	if !isJSON(r) {
		if err := r.ParseForm(); err != nil {
			return nil, err
		}
		for _, name := range export.Columns {
			fields[name] = r.PostForm.Get(name)
		}
		return fields, nil
	}

	var raw map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	for _, name := range export.Columns {
		switch v := raw[name].(type) {
		case nil:
		case string:
			fields[name] = v
		case json.Number:
			fields[name] = v.String()
		case bool:
			fields[name] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("field %q: unsupported value of type %T", name, v)
		}
	}
	return fields, nil
}
