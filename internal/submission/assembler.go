package submission

import (
	"github.com/garyjia/doc-request/internal/form"
)

// Entry is one file in the transport payload. Path is the
// "sectionKey/fieldKey" slot the file was attached to; the delivery
// collaborator appends the original file name underneath it.
type Entry struct {
	Path string
	File *form.AttachedFile
}

// Payload is the flat, ordered submission handed to the delivery
// collaborator.
type Payload struct {
	Client  string
	Period  string
	Entries []Entry
}

// Options configures payload assembly.
type Options struct {
	// IncludeRemarks emits a non-empty section remark as a remarks.txt
	// entry under the section key.
	IncludeRemarks bool
}

// Assemble flattens the model into payload entries: sections in schema
// order, fields in schema order, applicable sections only. Inapplicable
// sections contribute nothing, their remarks included.
func Assemble(m *form.Model, opts Options) *Payload {
	p := &Payload{
		Client: m.Client(),
		Period: m.Period(),
	}

	for _, sec := range m.Schema().Sections() {
		if !m.Applicable(sec.Key) {
			continue
		}
		for _, field := range sec.Fields {
			f := m.File(sec.Key, field.Key)
			if f == nil {
				continue
			}
			p.Entries = append(p.Entries, Entry{
				Path: sec.Key + "/" + field.Key,
				File: f,
			})
		}
		if opts.IncludeRemarks {
			if remark := m.Remark(sec.Key); remark != "" {
				data := []byte(remark)
				p.Entries = append(p.Entries, Entry{
					Path: sec.Key,
					File: &form.AttachedFile{
						Name:        "remarks.txt",
						Size:        int64(len(data)),
						ContentType: "text/plain",
						Data:        data,
					},
				})
			}
		}
	}

	return p
}
