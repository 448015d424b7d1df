// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"slices"

	"cogentcore.org/vr/mat32"
)

// Object is a node in the scene graph. A node is a plain transform
// unless it carries a Light or a Mesh.
type Object struct {
	Name string

	// transform relative to Parent
	Pose Pose

	Parent   *Object `display:"-"`
	Children []*Object

	// light component, if this node is a light
	Light *Light

	// mesh renderer component, if this node draws a mesh
	Mesh *MeshRenderer
}

// NewObject returns a new object with the given name and a default pose.
func NewObject(name string) *Object {
	ob := &Object{Name: name}
	ob.Pose.Defaults()
	ob.Pose.UpdateMatrix()
	return ob
}

func (ob *Object) String() string {
	return ob.Name
}

// AddChild adds kid as the last child of ob, removing it from any
// previous parent.
func (ob *Object) AddChild(kid *Object) {
	if kid.Parent != nil {
		kid.Parent.RemoveChild(kid)
	}
	kid.Parent = ob
	ob.Children = append(ob.Children, kid)
}

// RemoveChild removes kid from the children of ob. It returns false
// if kid is not a child of ob.
func (ob *Object) RemoveChild(kid *Object) bool {
	i := slices.Index(ob.Children, kid)
	if i < 0 {
		return false
	}
	ob.Children = slices.Delete(ob.Children, i, i+1)
	kid.Parent = nil
	return true
}

// WalkBreadth calls fn on ob and all of its descendants in
// breadth-first order, stopping early if fn returns false.
func (ob *Object) WalkBreadth(fn func(o *Object) bool) {
	queue := []*Object{ob}
	for len(queue) > 0 {
		o := queue[0]
		queue = queue[1:]
		if !fn(o) {
			return
		}
		queue = append(queue, o.Children...)
	}
}

// UpdateWorld recomputes the local and world matrices of ob and all
// of its descendants, with par as the world matrix of ob's parent.
func (ob *Object) UpdateWorld(par *mat32.Mat4) {
	ob.Pose.UpdateMatrix()
	ob.Pose.UpdateWorldMatrix(par)
	for _, kid := range ob.Children {
		kid.UpdateWorld(&ob.Pose.WorldMatrix)
	}
}
