// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"log/slog"
)

// BucketState is the sharing state of one material bucket: the
// template returned to the model loader, the instance currently being
// filled, and the next free texture slot in it.
type BucketState struct {
	// material the loader assigns to meshes of this bucket
	Template *Material

	// instance currently receiving meshes
	Active *Material

	// next texture slot in Active
	Next uint32

	// instances that were filled up and replaced
	Retired []*Material
}

// Instances returns all instances of the bucket, retired first.
func (bs *BucketState) Instances() []*Material {
	if bs.Active == nil {
		return bs.Retired
	}
	return append(bs.Retired[:len(bs.Retired):len(bs.Retired)], bs.Active)
}

// MaterialPool shares material instances among meshes up to the
// capacity of the shader texture arrays. Each mesh gets a slot in the
// active instance of its bucket; when the slots of an instance are
// used up it is retired and a fresh instance takes over at slot 0.
type MaterialPool struct {
	// number of texture slots per instance
	Capacity uint32

	Buckets [BucketsN]BucketState
}

// NewMaterialPool returns a pool with the given per-instance capacity,
// which must be at least 1.
func NewMaterialPool(capacity uint32) *MaterialPool {
	mp := &MaterialPool{Capacity: max(capacity, 1)}
	for bk := range mp.Buckets {
		mp.Buckets[bk].Template = NewBucketMaterial(Buckets(bk), 0)
	}
	return mp
}

// Template returns the template material for the given glTF alpha mode.
func (mp *MaterialPool) Template(alphaMode string) *Material {
	return mp.Buckets[BucketForAlphaMode(alphaMode)].Template
}

// BucketOf returns the bucket whose template is mt.
func (mp *MaterialPool) BucketOf(mt *Material) (Buckets, bool) {
	for bk := range mp.Buckets {
		if mp.Buckets[bk].Template == mt {
			return Buckets(bk), true
		}
	}
	return 0, false
}

// Assign returns the instance and slot for a mesh currently using the
// template material tmpl. ok is false if tmpl is not a template of
// this pool.
func (mp *MaterialPool) Assign(tmpl *Material) (mt *Material, slot uint32, ok bool) {
	bk, ok := mp.BucketOf(tmpl)
	if !ok {
		return nil, 0, false
	}
	bs := &mp.Buckets[bk]
	if bs.Active == nil || bs.Next >= mp.Capacity {
		if bs.Active != nil {
			bs.Retired = append(bs.Retired, bs.Active)
			slog.Debug("material instance full", "bucket", bk, "instance", len(bs.Retired))
		}
		bs.Active = NewBucketMaterial(bk, mp.Capacity)
		bs.Next %= mp.Capacity
	}
	slot = bs.Next
	bs.Next++
	return bs.Active, slot, true
}
