package asm

import (
	"strings"

	"github.com/pintlang/pintc/internal/ir"
)

// pathwayResolution is what PathByName resolves a qualified
// `{instance}::{var}` name to once none of the local private-var,
// public-var or state lookups match (spec.md §4.4.5).
type pathwayResolution struct {
	pathwaySlot int // the synthetic `__{instance}_pathway` private var's slot
	remoteSlot  int // the named var's position among the target predicate interface's vars
	width       int
}

// resolvePathway matches fullName against every PredicateInstance in p
// (spec.md §4.4.5): `{instance}::{var}` resolves through the instance's
// interface to a PredicateInterface var, addressed via the synthetic
// pathway private var `__{instance}_pathway` introduced for this
// purpose.
func resolvePathway(c *ir.Contract, p *ir.Predicate, l *Layout, fullName string) (pathwayResolution, bool) {
	sep := strings.Index(fullName, "::")
	if sep < 0 {
		return pathwayResolution{}, false
	}
	instanceName, varName := fullName[:sep], fullName[sep+2:]

	inst, ok := p.PredicateInstanceByName(instanceName)
	if !ok {
		return pathwayResolution{}, false
	}

	var ifaceName string
	if inst.InterfaceInstance != nil {
		ii, ok := p.InterfaceInstanceByName(*inst.InterfaceInstance)
		if !ok {
			return pathwayResolution{}, false
		}
		ifaceName = ii.InterfaceName
	}

	var predIface *ir.PredicateInterface
	for i := range c.Interfaces {
		if c.Interfaces[i].Name != ifaceName {
			continue
		}
		if pi, ok := c.Interfaces[i].PredicateByName(inst.PredicateIdent); ok {
			predIface = pi
		}
	}
	if predIface == nil {
		return pathwayResolution{}, false
	}

	remoteIdx, ok := predIface.VarIndex(varName)
	if !ok {
		return pathwayResolution{}, false
	}
	ivar := predIface.Vars[remoteIdx]

	pathwayVarName := "__" + instanceName + "_pathway"
	var pathwayKey ir.VarKey
	foundPathwayVar := false
	p.EachVar(func(k ir.VarKey, v *ir.Var) bool {
		if v.Name == pathwayVarName {
			pathwayKey, foundPathwayVar = k, true
			return false
		}
		return true
	})
	if !foundPathwayVar {
		return pathwayResolution{}, false
	}
	pathwaySlot, ok := l.PrivateSlot(pathwayKey)
	if !ok {
		return pathwayResolution{}, false
	}

	return pathwayResolution{
		pathwaySlot: pathwaySlot,
		remoteSlot:  remoteIdx,
		width:       ir.Size(ivar.Type),
	}, true
}
