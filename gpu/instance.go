// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"

	vk "github.com/goki/vulkan"
)

// AvailableInstanceExtensions returns the names of all instance
// extensions supported by the loader.
func AvailableInstanceExtensions() ([]string, error) {
	var count uint32
	if err := NewError(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.ExtensionProperties, count)
	if err := NewError(vk.EnumerateInstanceExtensionProperties("", &count, props)); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, p := range props[:count] {
		p.Deref()
		names = append(names, vk.ToString(p.ExtensionName[:]))
	}
	return names, nil
}

// AvailableDeviceExtensions returns the names of all device
// extensions supported by the given physical device.
func AvailableDeviceExtensions(pd vk.PhysicalDevice) ([]string, error) {
	var count uint32
	if err := NewError(vk.EnumerateDeviceExtensionProperties(pd, "", &count, nil)); err != nil {
		return nil, err
	}
	props := make([]vk.ExtensionProperties, count)
	if err := NewError(vk.EnumerateDeviceExtensionProperties(pd, "", &count, props)); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, p := range props[:count] {
		p.Deref()
		names = append(names, vk.ToString(p.ExtensionName[:]))
	}
	return names, nil
}

// CreateInstance creates the Vulkan instance with all requested
// instance extensions, after checking that the loader supports them.
func (cx *Context) CreateInstance(appName string) error {
	avail, err := AvailableInstanceExtensions()
	if err != nil {
		return err
	}
	if err := CheckExtensions("instance", cx.InstanceExts, avail); err != nil {
		return err
	}
	exts := cStrings(cx.InstanceExts)
	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			PApplicationName:   appName + "\x00",
			ApplicationVersion: vk.MakeVersion(1, 0, 0),
			PEngineName:        "vr\x00",
			EngineVersion:      vk.MakeVersion(1, 0, 0),
			ApiVersion:         vk.MakeVersion(1, 1, 0),
		},
		EnabledExtensionCount:   uint32(len(exts)),
		PpEnabledExtensionNames: exts,
	}, nil, &instance)
	if err := NewError(ret); err != nil {
		return fmt.Errorf("gpu: create instance: %w", err)
	}
	cx.Instance = instance
	if err := vk.InitInstance(instance); err != nil {
		return err
	}
	slog.Info("created Vulkan instance", "extensions", cx.InstanceExts)
	return nil
}

// SelectPhysicalDevice picks the first physical device reported by
// the instance.
func (cx *Context) SelectPhysicalDevice() error {
	var count uint32
	if err := NewError(vk.EnumeratePhysicalDevices(cx.Instance, &count, nil)); err != nil {
		return err
	}
	if count == 0 {
		return ErrNoDevice
	}
	devs := make([]vk.PhysicalDevice, count)
	if err := NewError(vk.EnumeratePhysicalDevices(cx.Instance, &count, devs)); err != nil {
		return err
	}
	cx.PhysicalDevice = devs[0]

	var props vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(cx.PhysicalDevice, &props)
	props.Deref()
	slog.Info("selected physical device", "name", vk.ToString(props.DeviceName[:]))
	return nil
}

// FindQueue finds a queue family with the given flag bits and
// stores its index in QueueFamily.
func (cx *Context) FindQueue(flags vk.QueueFlagBits) error {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(cx.PhysicalDevice, &count, nil)
	props := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(cx.PhysicalDevice, &count, props)
	required := vk.QueueFlags(flags)
	for i := uint32(0); i < count; i++ {
		props[i].Deref()
		if props[i].QueueFlags&required != 0 {
			cx.QueueFamily = i
			return nil
		}
	}
	return fmt.Errorf("%w: no queue family with flags %#x", ErrNoDevice, flags)
}

// CreateDevice creates the logical device and graphics queue with all
// requested device extensions, after checking that the physical device
// supports them.
func (cx *Context) CreateDevice() error {
	avail, err := AvailableDeviceExtensions(cx.PhysicalDevice)
	if err != nil {
		return err
	}
	if err := CheckExtensions("device", cx.DeviceExts, avail); err != nil {
		return err
	}
	if err := cx.FindQueue(vk.QueueGraphicsBit); err != nil {
		return err
	}
	exts := cStrings(cx.DeviceExts)
	var device vk.Device
	ret := vk.CreateDevice(cx.PhysicalDevice, &vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos: []vk.DeviceQueueCreateInfo{{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: cx.QueueFamily,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		}},
		EnabledExtensionCount:   uint32(len(exts)),
		PpEnabledExtensionNames: exts,
	}, nil, &device)
	if err := NewError(ret); err != nil {
		return fmt.Errorf("gpu: create device: %w", err)
	}
	cx.Device = device

	var queue vk.Queue
	vk.GetDeviceQueue(cx.Device, cx.QueueFamily, 0, &queue)
	cx.Queue = queue
	slog.Info("created Vulkan device", "queueFamily", cx.QueueFamily, "extensions", cx.DeviceExts)
	return nil
}

// WaitIdle waits for the device to finish all submitted work.
func (cx *Context) WaitIdle() {
	if cx.Device != nil {
		vk.DeviceWaitIdle(cx.Device)
	}
}

// Destroy destroys the device and instance.
func (cx *Context) Destroy() {
	if cx.Device != nil {
		vk.DeviceWaitIdle(cx.Device)
		vk.DestroyDevice(cx.Device, nil)
		cx.Device = nil
	}
	if cx.Instance != nil {
		vk.DestroyInstance(cx.Instance, nil)
		cx.Instance = nil
	}
}
