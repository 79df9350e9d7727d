package item

// Well-known field identifiers. Downstream consumers key on these exact values.
const (
	FieldIcon      = "06d5295c-ed2f-4a54-9bf2-26228d113318"
	FieldBlob      = "40e50ed9-ba07-4702-992e-a912738d32dc"
	FieldSize      = "6954b7c7-2487-423f-8600-436cb3b6dc0e"
	FieldMimeType  = "6f47a0a5-9c94-4b48-abeb-42d38def6054"
	FieldExtension = "c06867fe-9a43-4c7d-b739-48780492d06f"
	FieldSortOrder = "ba3f86a2-4a1c-4d78-b63d-91c2779c1b5e"
	FieldCreated   = "25bed78c-4957-4165-998a-ca1b52f67497"
	FieldCreatedBy = "5dd74568-4d4b-44c1-b513-0af5f4cda34f"
)

// Human readable hints written next to the well-known field identifiers.
const (
	HintIcon      = "__Icon"
	HintBlob      = "Blob"
	HintSize      = "Size"
	HintMimeType  = "Mime Type"
	HintExtension = "Extension"
	HintSortOrder = "__Sortorder"
	HintCreated   = "__Created"
	HintCreatedBy = "__Created by"
)

// TemplateFile is the template of unversioned file items.
const TemplateFile = "962b53c4-f93b-4df9-9821-415c867b8903"
