package k8s

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func availableDeployment(namespace, name string) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Status: appsv1.DeploymentStatus{
			Conditions: []appsv1.DeploymentCondition{
				{Type: appsv1.DeploymentAvailable, Status: corev1.ConditionTrue},
			},
		},
	}
}

func TestWaitForDeploymentReady(t *testing.T) {
	ctx := context.Background()

	t.Run("available deployment returns immediately", func(t *testing.T) {
		client := fake.NewSimpleClientset(availableDeployment("ingress-nginx", "ingress-nginx-controller"))

		err := WaitForDeploymentReady(ctx, client, "ingress-nginx", "ingress-nginx-controller", 5*time.Second)
		assert.NoError(t, err)
	})

	t.Run("missing deployment times out", func(t *testing.T) {
		client := fake.NewSimpleClientset()

		err := WaitForDeploymentReady(ctx, client, "traefik", "traefik", 100*time.Millisecond)
		assert.Error(t, err)
	})

	t.Run("unavailable deployment times out", func(t *testing.T) {
		dep := &appsv1.Deployment{
			ObjectMeta: metav1.ObjectMeta{Name: "traefik", Namespace: "traefik"},
			Status: appsv1.DeploymentStatus{
				Conditions: []appsv1.DeploymentCondition{
					{Type: appsv1.DeploymentAvailable, Status: corev1.ConditionFalse},
				},
			},
		}
		client := fake.NewSimpleClientset(dep)

		err := WaitForDeploymentReady(ctx, client, "traefik", "traefik", 100*time.Millisecond)
		assert.Error(t, err)
	})

	t.Run("stale observed generation is not ready", func(t *testing.T) {
		dep := availableDeployment("traefik", "traefik")
		dep.Generation = 2
		dep.Status.ObservedGeneration = 1
		client := fake.NewSimpleClientset(dep)

		err := WaitForDeploymentReady(ctx, client, "traefik", "traefik", 100*time.Millisecond)
		assert.Error(t, err)
	})
}
