package commands

func builtinTable() []Builtin {
	return []Builtin{
		{
			Name:    "mkdir",
			Arity:   Fixed(1),
			Access:  []Access{Write},
			Params:  []Param{ParamString, ParamLogger},
			Summary: "Create a directory and any missing parents",
			Handler: makeDirectory,
		},
		{
			Name:    "mv",
			Arity:   Fixed(2),
			Access:  []Access{Read, Write},
			Params:  []Param{ParamString, ParamString, ParamLogger},
			Summary: "Move a file (replacing the target) or a directory",
			Handler: moveEntry,
		},
		{
			Name:    "cp",
			Arity:   Fixed(2),
			Access:  []Access{Read, Write},
			Params:  []Param{ParamString, ParamString, ParamLogger},
			Summary: "Copy a file, or a directory recursively",
			Handler: copyEntry,
		},
		{
			Name:    "rm",
			Arity:   Any(),
			Access:  []Access{Write},
			Params:  []Param{ParamStrings, ParamLogger},
			Summary: "Remove files, and directories recursively",
			Handler: removeEntries,
		},
		{
			Name:    "include",
			Arity:   Any(),
			Access:  []Access{Read},
			Params:  []Param{ParamStrings, ParamLogger},
			Summary: "Restrict renaming to paths containing one of the targets",
			Handler: includeTargets,
		},
		{
			Name:    "exclude",
			Arity:   Any(),
			Access:  []Access{Read},
			Params:  []Param{ParamStrings, ParamLogger},
			Summary: "Skip paths containing one of the targets during renaming",
			Handler: excludeTargets,
		},
		{
			Name:    "patchlib",
			Arity:   Any(),
			Access:  []Access{Write},
			Params:  []Param{ParamStrings, ParamLogger},
			Async:   true,
			Summary: "Rename strings in native library string tables",
			Handler: patchLibraries,
		},
		{
			Name:    "patchasset",
			Arity:   Any(),
			Access:  []Access{Write},
			Params:  []Param{ParamStrings, ParamLogger},
			Async:   true,
			Summary: "Rename text in catalog entries of asset archives",
			Handler: patchAssets,
		},
	}
}
