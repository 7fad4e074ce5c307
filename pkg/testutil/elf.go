// pkg/testutil/elf.go
// DEPENDENCIES: None
// PURPOSE: Produce minimal ELF64 images for string-table rewrite tests

package testutil

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
)

// StringTable is one SHT_STRTAB section of a built image
type StringTable struct {
	Name    string
	Strings []string
}

// ELFImage is a built object file plus the file offset of each string table
type ELFImage struct {
	Data    []byte
	Offsets map[string]int
}

// Offset returns the file offset of s inside the named table, or -1
func (img ELFImage) Offset(table, s string) int {
	start, ok := img.Offsets[table]
	if !ok {
		return -1
	}
	idx := bytes.Index(img.Data[start:], append([]byte(s), 0))
	if idx < 0 {
		return -1
	}
	return start + idx
}

// BuildELF lays out a little-endian ELF64 shared object with a null
// section, the given string tables and a trailing .shstrtab.
func BuildELF(tables ...StringTable) ELFImage {
	const (
		headerSize  = 64
		sectionSize = 64
	)

	var shstrtab bytes.Buffer
	shstrtab.WriteByte(0)
	nameOffsets := make([]uint32, len(tables)+1)
	for i, table := range tables {
		nameOffsets[i] = uint32(shstrtab.Len())
		shstrtab.WriteString(table.Name)
		shstrtab.WriteByte(0)
	}
	nameOffsets[len(tables)] = uint32(shstrtab.Len())
	shstrtab.WriteString(".shstrtab")
	shstrtab.WriteByte(0)

	var body bytes.Buffer
	offsets := make(map[string]int)
	sections := []elf.Section64{{}}

	for i, table := range tables {
		var data bytes.Buffer
		data.WriteByte(0)
		for _, s := range table.Strings {
			data.WriteString(s)
			data.WriteByte(0)
		}
		off := headerSize + body.Len()
		offsets[table.Name] = off
		body.Write(data.Bytes())
		sections = append(sections, elf.Section64{
			Name:      nameOffsets[i],
			Type:      uint32(elf.SHT_STRTAB),
			Flags:     uint64(elf.SHF_ALLOC),
			Off:       uint64(off),
			Size:      uint64(data.Len()),
			Addralign: 1,
		})
	}

	shOff := headerSize + body.Len()
	offsets[".shstrtab"] = shOff
	body.Write(shstrtab.Bytes())
	sections = append(sections, elf.Section64{
		Name:      nameOffsets[len(tables)],
		Type:      uint32(elf.SHT_STRTAB),
		Off:       uint64(shOff),
		Size:      uint64(shstrtab.Len()),
		Addralign: 1,
	})

	for body.Len()%8 != 0 {
		body.WriteByte(0)
	}
	sectionTable := headerSize + body.Len()

	var ident [elf.EI_NIDENT]byte
	copy(ident[:], elf.ELFMAG)
	ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)

	header := elf.Header64{
		Ident:     ident,
		Type:      uint16(elf.ET_DYN),
		Machine:   uint16(elf.EM_AARCH64),
		Version:   uint32(elf.EV_CURRENT),
		Shoff:     uint64(sectionTable),
		Ehsize:    headerSize,
		Shentsize: sectionSize,
		Shnum:     uint16(len(sections)),
		Shstrndx:  uint16(len(sections) - 1),
	}

	var out bytes.Buffer
	_ = binary.Write(&out, binary.LittleEndian, header)
	out.Write(body.Bytes())
	for _, s := range sections {
		_ = binary.Write(&out, binary.LittleEndian, s)
	}

	return ELFImage{Data: out.Bytes(), Offsets: offsets}
}
