package notionsync

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/dvloznov/spent-tracker/internal/transaction"
)

// TransactionToNotionProperties converts a history record to Notion properties.
// Maps fields according to the Notion transactions database schema:
// Description, Date, Amount, Tags, Category, Source, Transaction ID, Notes, Is Merged
func TransactionToNotionProperties(t *transaction.Transaction) notionapi.Properties {
	props := notionapi.Properties{
		"Description": notionapi.TitleProperty{
			Title: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: t.Description,
					},
				},
			},
		},
		"Amount": notionapi.NumberProperty{
			Number: float64(t.AmountCents) / 100,
		},
		"Transaction ID": notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: t.ID,
					},
				},
			},
		},
	}

	// Date - dates in the history are already year-month-day
	if parsed, err := time.Parse("2006-01-02", t.Date); err == nil {
		props["Date"] = notionapi.DateProperty{
			Date: &notionapi.DateObject{
				Start: func() *notionapi.Date {
					d := notionapi.Date(parsed)
					return &d
				}(),
			},
		}
	}

	// Tags
	if len(t.Tags) > 0 {
		options := make([]notionapi.Option, 0, len(t.Tags))
		for _, tag := range t.Tags {
			options = append(options, notionapi.Option{Name: tag})
		}
		props["Tags"] = notionapi.MultiSelectProperty{
			MultiSelect: options,
		}
	}

	// Category - skipped for records whose tags span multiple categories
	if cat, err := transaction.CategoryOf(t); err == nil && cat != transaction.CategoryOther {
		props["Category"] = notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: cat.String(),
			},
		}
	}

	// Source
	if t.Source != "" {
		props["Source"] = notionapi.SelectProperty{
			Select: notionapi.Option{
				Name: t.Source,
			},
		}
	}

	// Notes
	if t.Notes != "" {
		props["Notes"] = notionapi.RichTextProperty{
			RichText: []notionapi.RichText{
				{
					Type: notionapi.ObjectTypeText,
					Text: &notionapi.Text{
						Content: t.Notes,
					},
				},
			},
		}
	}

	props["Is Merged"] = notionapi.CheckboxProperty{
		Checkbox: len(t.Transactions) > 0,
	}

	return props
}
