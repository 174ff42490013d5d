package document

// folderAssignments maps virtual folder paths to the document types they
// collect. Used by the reporting layer to organize a year's documents.
var folderAssignments = []struct {
	folder string
	types  []Type
}{
	{"Income/Employment", []Type{TypeW2, TypeW2G}},
	{"Income/Investments", []Type{Type1099INT, Type1099DIV, Type1099B}},
	{"Income/Self-Employment", []Type{Type1099NEC, Type1099MISC, TypeK1}},
	{"Income/Retirement", []Type{Type1099R}},
	{"Income/Government", []Type{Type1099G, Type1099K}},
	{"Deductions/Mortgage", []Type{Type1098}},
	{"Deductions/Education", []Type{Type1098T, Type1098E}},
	{"Deductions/Retirement", []Type{Type5498}},
	{"Returns/Federal", []Type{Type1040, Type1040SR, Type1040NR, Type1040X}},
	{"Returns/Schedules", []Type{TypeScheduleA, TypeScheduleB, TypeScheduleC, TypeScheduleD, TypeScheduleE, TypeScheduleSE}},
	{"Returns/State", []Type{TypeStateReturn}},
}

// Folder returns the virtual folder path for a document type, or "Other" for
// types with no assigned folder.
func Folder(t Type) string {
	for _, fa := range folderAssignments {
		for _, ft := range fa.types {
			if ft == t {
				return fa.folder
			}
		}
	}
	return "Other"
}

// GroupByFolder groups documents by their virtual folder.
func GroupByFolder(docs []*TaxDocument) map[string][]*TaxDocument {
	byFolder := make(map[string][]*TaxDocument)
	for _, doc := range docs {
		folder := Folder(doc.Type)
		byFolder[folder] = append(byFolder[folder], doc)
	}
	return byFolder
}

// sourceTypes are the form types that feed income and withholding totals.
var sourceTypes = map[Type]bool{
	TypeW2: true, TypeW2G: true,
	Type1099INT: true, Type1099DIV: true, Type1099B: true,
	Type1099NEC: true, Type1099MISC: true, Type1099R: true,
	Type1099G: true, Type1099K: true,
	Type1098: true, Type1098T: true, Type1098E: true,
	Type5498: true, TypeK1: true,
}

// IsSourceDocument reports whether the type is an income/deduction source
// form rather than a completed return.
func IsSourceDocument(t Type) bool { return sourceTypes[t] }
