package models

// StructureTree is the singleton project/folder hierarchy shown in the
// client sidebar. It is stored and returned as an opaque JSON mapping.
type StructureTree map[string]interface{}

// StructureDocumentID is the fixed identifier of the structure document
const StructureDocumentID = "estrutura"

// StructureCollection is the collection (or table suffix) holding the structure document
const StructureCollection = "sistema"

// EmptyStructure returns the value served before any save
func EmptyStructure() StructureTree {
	return StructureTree{}
}
