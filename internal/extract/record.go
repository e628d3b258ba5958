package extract

// Schema field names. Every Record carries exactly this set of fields.
const (
	FieldPONumber     = "PO Number"
	FieldVendor       = "Vendor"
	FieldReference    = "Reference"
	FieldPOIssueDate  = "PO Issue Date"
	FieldDeliveryDate = "Delivery Date"
	FieldItemCode     = "Item Code"
	FieldDescription  = "Description"
	FieldItemDetails  = "Item Details"
	FieldUoM          = "UoM"
	FieldQuantity     = "Quantity"
	FieldPrice        = "Price"
	FieldTotal        = "Total"
	FieldPaymentTerm  = "Payment Term"
)

// Schema is the fixed, ordered set of output columns shared by all Records.
// The CSV header and the web table both follow this order.
var Schema = []string{
	FieldPONumber,
	FieldVendor,
	FieldReference,
	FieldPOIssueDate,
	FieldDeliveryDate,
	FieldItemCode,
	FieldDescription,
	FieldItemDetails,
	FieldUoM,
	FieldQuantity,
	FieldPrice,
	FieldTotal,
	FieldPaymentTerm,
}

// itemFields are the schema fields populated per item block rather than per
// document header.
var itemFields = []string{
	FieldDeliveryDate,
	FieldItemCode,
	FieldDescription,
	FieldItemDetails,
	FieldUoM,
	FieldQuantity,
	FieldPrice,
	FieldTotal,
}

// Record is one extracted row corresponding to one input document (or, in
// line-item expansion mode, one item block). Fields that could not be matched
// hold the empty string.
type Record map[string]string

// NewRecord returns a Record with every schema field present and empty.
func NewRecord() Record {
	r := make(Record, len(Schema))
	for _, field := range Schema {
		r[field] = ""
	}
	return r
}

// Row returns the record values in the given column order. Unknown columns
// yield empty values.
func (r Record) Row(columns []string) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		row[i] = r[col]
	}
	return row
}

// merge copies the named fields from src into r.
func (r Record) merge(src Record, fields []string) {
	for _, field := range fields {
		if v, ok := src[field]; ok {
			r[field] = v
		}
	}
}

// clone returns an independent copy of the record.
func (r Record) clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
