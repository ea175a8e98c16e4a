// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package tree

// ElementKind classifies what role a node plays in the tree. Only
// ElementBranch carries no value; every other kind is a leaf.
type ElementKind uint8

const (
	ElementAttribute ElementKind = iota
	ElementBranch
	ElementSensor
	ElementActuator
	ElementElement
)

func (k ElementKind) String() string {
	switch k {
	case ElementAttribute:
		return "attribute"
	case ElementBranch:
		return "branch"
	case ElementSensor:
		return "sensor"
	case ElementActuator:
		return "actuator"
	case ElementElement:
		return "element"
	default:
		return "unknown"
	}
}

// ElementKindFromString converts the VSS CSV "elem_kind" field. Returns
// false if the string names no known kind. "rbranch" is accepted as an
// alias for branch.
func ElementKindFromString(s string) (ElementKind, bool) {
	switch s {
	case "attribute":
		return ElementAttribute, true
	case "branch", "rbranch":
		return ElementBranch, true
	case "sensor":
		return ElementSensor, true
	case "actuator":
		return ElementActuator, true
	case "element":
		return ElementElement, true
	default:
		return 0, false
	}
}

// DataKind is the scalar type carried by a leaf's value cell.
type DataKind uint8

const (
	KindInt8 DataKind = iota
	KindUint8
	KindInt16
	KindUint16
	KindInt32
	KindUint32
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindStream
	KindNone
)

func (k DataKind) String() string {
	switch k {
	case KindInt8:
		return "int8"
	case KindUint8:
		return "uint8"
	case KindInt16:
		return "int16"
	case KindUint16:
		return "uint16"
	case KindInt32:
		return "int32"
	case KindUint32:
		return "uint32"
	case KindFloat32:
		return "float"
	case KindFloat64:
		return "double"
	case KindBool:
		return "boolean"
	case KindString:
		return "string"
	case KindStream:
		return "stream"
	case KindNone:
		return "na"
	default:
		return "unknown"
	}
}

// DataKindFromString converts the VSS CSV "data_kind" field.
func DataKindFromString(s string) (DataKind, bool) {
	switch s {
	case "int8":
		return KindInt8, true
	case "uint8":
		return KindUint8, true
	case "int16":
		return KindInt16, true
	case "uint16":
		return KindUint16, true
	case "int32":
		return KindInt32, true
	case "uint32":
		return KindUint32, true
	case "float":
		return KindFloat32, true
	case "double":
		return KindFloat64, true
	case "boolean":
		return KindBool, true
	case "string":
		return KindString, true
	case "stream":
		return KindStream, true
	case "", "na":
		return KindNone, true
	default:
		return 0, false
	}
}
