package sfcore

// ObjectType is one of the supported sObject types.
type ObjectType string

const (
	ObjectAccount     ObjectType = "Account"
	ObjectContact     ObjectType = "Contact"
	ObjectLead        ObjectType = "Lead"
	ObjectOpportunity ObjectType = "Opportunity"
)

// SupportedObjects lists the object types in menu order.
var SupportedObjects = []ObjectType{
	ObjectAccount,
	ObjectContact,
	ObjectLead,
	ObjectOpportunity,
}

// FieldPrompt pairs a field name with the label shown when collecting input.
type FieldPrompt struct {
	Field string
	Label string
}

var queryFields = map[ObjectType][]string{
	ObjectAccount:     {"Id", "Name", "Industry", "Phone", "CreatedDate"},
	ObjectContact:     {"Id", "FirstName", "LastName", "Email", "Phone", "AccountId"},
	ObjectLead:        {"Id", "FirstName", "LastName", "Company", "Status", "Email"},
	ObjectOpportunity: {"Id", "Name", "StageName", "Amount", "CloseDate", "AccountId"},
}

var exportFields = map[ObjectType][]string{
	ObjectAccount:     {"Id", "Name", "Industry", "Phone", "CreatedDate"},
	ObjectContact:     {"Id", "FirstName", "LastName", "Email", "Phone"},
	ObjectLead:        {"Id", "FirstName", "LastName", "Company", "Status", "Email"},
	ObjectOpportunity: {"Id", "Name", "StageName", "Amount", "CloseDate"},
}

var createPrompts = map[ObjectType][]FieldPrompt{
	ObjectAccount: {
		{Field: "Name", Label: "Account name"},
		{Field: "Industry", Label: "Industry"},
		{Field: "Phone", Label: "Phone"},
	},
	ObjectContact: {
		{Field: "FirstName", Label: "First name"},
		{Field: "LastName", Label: "Last name"},
		{Field: "Email", Label: "Email"},
		{Field: "Phone", Label: "Phone"},
	},
	ObjectLead: {
		{Field: "FirstName", Label: "First name"},
		{Field: "LastName", Label: "Last name"},
		{Field: "Company", Label: "Company"},
		{Field: "Email", Label: "Email"},
	},
	ObjectOpportunity: {
		{Field: "Name", Label: "Opportunity name"},
		{Field: "StageName", Label: "Stage (e.g. Prospecting)"},
		{Field: "CloseDate", Label: "Close date (YYYY-MM-DD)"},
		{Field: "Amount", Label: "Amount"},
	},
}

var updateFields = map[ObjectType][]string{
	ObjectAccount:     {"Name", "Industry", "Phone"},
	ObjectContact:     {"FirstName", "LastName", "Email", "Phone"},
	ObjectLead:        {"FirstName", "LastName", "Company", "Status"},
	ObjectOpportunity: {"Name", "StageName", "Amount", "CloseDate"},
}

// QueryFields returns the default field list used for interactive queries.
func (o ObjectType) QueryFields() []string {
	if fields, ok := queryFields[o]; ok {
		return fields
	}
	return []string{"Id", "Name"}
}

// ExportFields returns the field list used for CSV export.
func (o ObjectType) ExportFields() []string {
	if fields, ok := exportFields[o]; ok {
		return fields
	}
	return []string{"Id", "Name"}
}

// CreatePrompts returns the labelled fields collected when creating a record.
func (o ObjectType) CreatePrompts() []FieldPrompt {
	return createPrompts[o]
}

// UpdateFields returns the fields offered when updating a record.
func (o ObjectType) UpdateFields() []string {
	return updateFields[o]
}

func (o ObjectType) String() string {
	return string(o)
}
