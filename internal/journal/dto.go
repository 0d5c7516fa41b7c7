package journal

type SaveEntryDTO struct {
	Text       string         `json:"text"`
	Reflection ReflectionData `json:"reflection,omitempty"`
}

type SaveEntryResponse struct {
	Entry      *Entry `json:"entry"`
	FirstOfDay bool   `json:"first_of_day"`
}
