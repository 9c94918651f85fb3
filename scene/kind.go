package scene

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind tags what a node stands for. Behaviour that differs between kinds is
// driven by capability methods on Kind, not by the concrete Go type.
type Kind int

const (
	KindObject Kind = iota
	KindGroup
	KindCamera
	KindLight
)

var kindNames = [...]string{"Object3D", "Group", "Camera", "Light"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ViewFacing reports whether the node looks down its local -Z axis.
func (k Kind) ViewFacing() bool {
	return k == KindCamera || k == KindLight
}

func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindObject, nil
	}
	for i, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(i), nil
		}
	}
	return KindObject, errors.Errorf("unknown node kind %q", s)
}
