package draw

import (
	"reflect"
	"testing"
)

func TestImageHasLoad(t *testing.T) {
	imageType := reflect.TypeOf((*Image)(nil)).Elem()
	m, ok := imageType.MethodByName("Load")
	if !ok {
		t.Fatal("Image interface does not have Load method")
	}
	if m.Type.NumIn() != 2 || m.Type.NumOut() != 2 {
		t.Errorf("Load has signature %v", m.Type)
	}
	if _, ok := reflect.TypeOf((*imageImpl)(nil)).MethodByName("Load"); !ok {
		t.Error("imageImpl does not implement Load")
	}
}

func TestPixConstantsDistinct(t *testing.T) {
	if RGBA32 == 0 || RGB24 == 0 {
		t.Fatalf("zero pixel format: RGBA32=%v RGB24=%v", RGBA32, RGB24)
	}
	if RGBA32 == RGB24 {
		t.Errorf("RGBA32 and RGB24 are both %v", RGBA32)
	}
}
