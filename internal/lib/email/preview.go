package email

import (
	"sort"

	"github.com/homeauctiondeals/gateway/internal/model"
	"github.com/pkg/errors"
)

// PreviewData contains sample template data for local preview.
//
//	PreviewData["enquiry_notification"]["FullName"] == "Jane Doe"
var PreviewData = map[Template]map[string]string{
	TemplateEnquiryNotification: enquiryData(model.Enquiry{
		FullName:     "Jane Doe",
		Phone:        "(512) 555-0100",
		Email:        "jane.doe@example.com",
		Description:  "Interested in auction homes around Austin under $300k.",
		Notification: true,
	}),
}

// Preview renders name with its sample data.
func Preview(name Template) (string, error) {
	data, ok := PreviewData[name]
	if !ok {
		return "", errors.Errorf("no preview data for template %s", name)
	}
	return Render(name, data)
}

// PreviewTemplates lists the templates that can be previewed.
func PreviewTemplates() []Template {
	names := make([]Template, 0, len(PreviewData))
	for name := range PreviewData {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
