package asm

import (
	"fmt"

	"github.com/pintlang/pintc/internal/ir"
)

// StorageKey records whether a compiled key is fully known at compile
// time or was partly built with dynamic opcodes, and whether it
// addresses another contract (spec.md §4.4.2 "Output: ... a record
// { kind: Static(key words) | Dynamic(length), is_extern: bool }").
type StorageKey struct {
	Static []uint64 // nil when Dynamic
	Length int
	Extern bool
}

func (k *StorageKey) IsStatic() bool { return k.Static != nil }

// compileStorageKey builds a storage key for a path expression,
// emitting opcodes into b for any dynamic portion (spec.md §4.4.2).
func compileStorageKey(c *ir.Contract, p *ir.Predicate, l *Layout, b *Builder, key ir.ExprKey) (*StorageKey, error) {
	e, ok := c.Expr(key)
	if !ok {
		return nil, fmt.Errorf("dangling storage-key expression")
	}

	switch v := e.(type) {
	case *ir.StorageAccess:
		return compileStorageAccess(c, p, b, v)

	case *ir.ArrayElementAccess:
		base, err := compileStorageKey(c, p, l, b, v.Array)
		if err != nil {
			return nil, err
		}
		baseType, _ := c.ExprType(v.Array)
		composite := !ir.IsPrimitiveOrMap(elementTypeOf(baseType))
		return extendKey(c, p, l, b, base, v.Index, composite)

	case *ir.TupleFieldAccess:
		base, err := compileStorageKey(c, p, l, b, v.Base)
		if err != nil {
			return nil, err
		}
		baseType, _ := c.ExprType(v.Base)
		offset, err := tupleFieldOffset(ir.Resolve(baseType), v)
		if err != nil {
			return nil, err
		}
		return applyStaticOffset(b, base, offset), nil

	case *ir.IntrinsicCall:
		if len(v.Args) == 0 {
			return nil, fmt.Errorf("storage-get intrinsic %q has no arguments", v.Name)
		}
		keyArg := v.Args[len(v.Args)-1]
		keyType, _ := c.ExprType(keyArg)
		length := ir.Size(keyType)
		return &StorageKey{Length: length, Extern: hasSuffix(v.Name, "__storage_get_extern")}, nil

	default:
		return nil, fmt.Errorf("%T is not a storage path expression", e)
	}
}

func compileStorageAccess(c *ir.Contract, p *ir.Predicate, b *Builder, sa *ir.StorageAccess) (*StorageKey, error) {
	block := c.Storage
	extern := false
	if sa.InterfaceInstance != nil {
		extern = true
		inst, ok := p.InterfaceInstanceByName(*sa.InterfaceInstance)
		if !ok {
			return nil, fmt.Errorf("unknown interface instance %q", *sa.InterfaceInstance)
		}
		var found bool
		for i := range c.Interfaces {
			if c.Interfaces[i].Name == inst.InterfaceName {
				block = c.Interfaces[i].Storage
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown interface %q", inst.InterfaceName)
		}
	}

	idx, ok := block.IndexOf(sa.Name)
	if !ok {
		return nil, fmt.Errorf("unknown storage variable %q", sa.Name)
	}
	typ := block.Vars[idx].Type

	words := []uint64{uint64(idx)}
	if !ir.IsPrimitiveOrMap(typ) {
		words = append(words, 0)
	}
	for _, w := range words {
		b.Push(byte(OpPush), w)
	}
	return &StorageKey{Static: words, Length: len(words), Extern: extern}, nil
}

func extendKey(c *ir.Contract, p *ir.Predicate, l *Layout, b *Builder, base *StorageKey, index ir.ExprKey, composite bool) (*StorageKey, error) {
	if err := compileValue(c, p, l, b, index); err != nil {
		return nil, err
	}

	length := base.Length + 1
	if composite {
		b.Push(byte(OpPush), 0)
		length++
	}
	return &StorageKey{Length: length, Extern: base.Extern}, nil
}

func applyStaticOffset(b *Builder, base *StorageKey, offset int) *StorageKey {
	if base.IsStatic() {
		words := append([]uint64(nil), base.Static...)
		words[len(words)-1] += uint64(offset)
		// The static key's words are already on the stack with the tail
		// word pushed last; replace that Push (tag byte plus 8-byte word)
		// with one carrying the offset tail.
		b.buf.Truncate(b.buf.Len() - 9)
		b.Push(byte(OpPush), words[len(words)-1])
		return &StorageKey{Static: words, Length: len(words), Extern: base.Extern}
	}
	// Plain word-wise Add on the dynamic key's tail word; a multi-word
	// key can in principle overflow that word. This mirrors the
	// original compiler's behavior exactly and is a known limitation
	// (spec.md §9), not something to fix here.
	b.Push(byte(OpPush), uint64(offset))
	b.Simple(byte(OpAdd))
	return &StorageKey{Length: base.Length, Extern: base.Extern}
}

func tupleFieldOffset(baseType ir.Type, access *ir.TupleFieldAccess) (int, error) {
	tup, ok := baseType.(*ir.Tuple)
	if !ok {
		return 0, fmt.Errorf("tuple field access on non-tuple type %T", baseType)
	}
	var idx int
	if access.Name != nil {
		i, _, ok := tup.FieldByName(*access.Name)
		if !ok {
			return 0, fmt.Errorf("unknown tuple field %q", *access.Name)
		}
		idx = i
	} else if access.Index != nil {
		idx = *access.Index
	}
	offset := 0
	for i := 0; i < idx; i++ {
		offset += ir.StorageSlots(tup.Fields[i].Type)
	}
	return offset, nil
}

func elementTypeOf(t ir.Type) ir.Type {
	if a, ok := ir.Resolve(t).(*ir.Array); ok {
		return a.Elem
	}
	return t
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
