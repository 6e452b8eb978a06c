package mkcore

import (
	"fmt"
	"testing"
)

func TestEnv_SetTags(t *testing.T) {
	var e Env
	e.SetTags("")
	if v, ok := e.Tag(""); !ok {
		t.Error("empty tag not set")
	} else if v != "" {
		t.Errorf("emty tag has value '%s'", v)
	}
	e.SetTags("foo")
	if v, ok := e.Tag("foo"); !ok {
		t.Error("tag 'foo' not set")
	} else if v != "" {
		t.Errorf("tag 'foo' has value '%s'", v)
	}
	e.SetTags("foo=bar=baz")
	if v, ok := e.Tag("foo"); !ok {
		t.Error("tag 'foo' not set")
	} else if v != "bar=baz" {
		t.Errorf("tag 'foo' has value '%s'", v)
	}
}

func TestEnv_Sub(t *testing.T) {
	var e Env
	e.SetTag(TagTargetPlatform, "windows")
	sub := e.Sub()
	if v, _ := sub.Tag(TagTargetPlatform); v != "windows" {
		t.Errorf("inherited tag '%s'", v)
	}
	sub.DelTag(TagTargetPlatform)
	if _, ok := sub.Tag(TagTargetPlatform); ok {
		t.Error("deleted tag still visible")
	}
	if _, ok := e.Tag(TagTargetPlatform); !ok {
		t.Error("delete in sub env affects parent")
	}
	sub.SetTag(TagPlatform, "linux-x64")
	if _, ok := e.Tag(TagPlatform); ok {
		t.Error("tag of sub env visible in parent")
	}
}

func ExampleEnv_Keys() {
	var e Env
	e.SetTags("B=1", "A=2")
	sub := e.Sub()
	sub.DelTag("B")
	sub.SetTag("C", "3")
	fmt.Println(e.Keys(), sub.Keys())
	// Output:
	// [A B] [A C]
}
