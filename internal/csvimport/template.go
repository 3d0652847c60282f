package csvimport

// TemplateFileName is the suggested download name of Template.
const TemplateFileName = "leads_template.csv"

// Template is a sample import file: the header and two example rows, the
// second of which is marked skip.
const Template = Header + `
Example Company,1000000,https://example.com,,+358401234567,Contact Person,John Doe,Yes,2024-01-15,Initial contact made,prospect
Another Company,500000,https://another.com,Skip,+358407654321,Secretary,Jane Smith,No,2024-01-10,Follow up needed,qualified
`
